// Package admin serves the operational status and audit views.
package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crdc/crdc/internal/platform/audit"
)

const auditLimit = 50

// Status is the system-wide record census. DataPoints counts observations,
// notes and findings together.
type Status struct {
	TotalStudies      int `json:"total_studies"`
	TotalParticipants int `json:"total_participants"`
	DataPoints        int `json:"data_points"`
}

// AuditReader lists recent audit rows.
type AuditReader interface {
	RecentChanges(ctx context.Context, limit int) ([]audit.ChangeEntry, error)
	RecentActivity(ctx context.Context, limit int) ([]audit.ActivityEntry, error)
}

type Service struct {
	pool  *pgxpool.Pool
	audit AuditReader
}

func NewService(pool *pgxpool.Pool, auditReader AuditReader) *Service {
	return &Service{pool: pool, audit: auditReader}
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	var st Status
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM studies),
			(SELECT COUNT(*) FROM participants),
			(SELECT COUNT(*) FROM observations) +
				(SELECT COUNT(*) FROM research_notes) +
				(SELECT COUNT(*) FROM findings)`,
	).Scan(&st.TotalStudies, &st.TotalParticipants, &st.DataPoints)
	if err != nil {
		return nil, fmt.Errorf("query system status: %w", err)
	}
	return &st, nil
}

func (s *Service) RecentChanges(ctx context.Context) ([]audit.ChangeEntry, error) {
	return s.audit.RecentChanges(ctx, auditLimit)
}

func (s *Service) RecentActivity(ctx context.Context) ([]audit.ActivityEntry, error) {
	return s.audit.RecentActivity(ctx, auditLimit)
}
