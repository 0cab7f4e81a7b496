package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the report aggregates.
type Repository interface {
	StudySummary(ctx context.Context) ([]*StudySummaryRow, error)
	EnrollmentRows(ctx context.Context) ([]*EnrollmentRow, error)
	SafetyRows(ctx context.Context) ([]*SafetyRow, error)
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) StudySummary(ctx context.Context) ([]*StudySummaryRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.study_name, s.principal_investigator,
			s.current_enrollment, s.target_enrollment,
			COUNT(DISTINCT n.note_id),
			COUNT(DISTINCT o.observation_id),
			COUNT(DISTINCT f.finding_id)
		FROM studies s
		LEFT JOIN research_notes n ON n.study_id = s.study_id
		LEFT JOIN observations o ON o.study_id = s.study_id
		LEFT JOIN findings f ON f.study_id = s.study_id
		WHERE s.study_status = 'ACTIVE'
		GROUP BY s.study_id, s.study_name, s.principal_investigator,
			s.current_enrollment, s.target_enrollment
		ORDER BY s.study_name`)
	if err != nil {
		return nil, fmt.Errorf("query study summary: %w", err)
	}
	defer rows.Close()

	var out []*StudySummaryRow
	for rows.Next() {
		var row StudySummaryRow
		err := rows.Scan(&row.StudyName, &row.PrincipalInvestigator,
			&row.CurrentEnrollment, &row.TargetEnrollment,
			&row.TotalNotes, &row.TotalObservations, &row.TotalFindings)
		if err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func (r *PGRepository) EnrollmentRows(ctx context.Context) ([]*EnrollmentRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT study_name, target_enrollment, current_enrollment
		FROM studies
		WHERE study_status = 'ACTIVE' AND target_enrollment > 0
		ORDER BY study_name`)
	if err != nil {
		return nil, fmt.Errorf("query enrollment: %w", err)
	}
	defer rows.Close()

	var out []*EnrollmentRow
	for rows.Next() {
		var row EnrollmentRow
		if err := rows.Scan(&row.StudyName, &row.TargetEnrollment, &row.CurrentEnrollment); err != nil {
			return nil, fmt.Errorf("scan enrollment row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func (r *PGRepository) SafetyRows(ctx context.Context) ([]*SafetyRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT finding_type, severity, COUNT(*),
			COUNT(*) FILTER (WHERE sae_reported)
		FROM findings
		WHERE finding_type IN ('Adverse Event', 'Lab Abnormality')
		GROUP BY finding_type, severity
		ORDER BY finding_type, severity`)
	if err != nil {
		return nil, fmt.Errorf("query safety rows: %w", err)
	}
	defer rows.Close()

	var out []*SafetyRow
	for rows.Next() {
		var row SafetyRow
		if err := rows.Scan(&row.FindingType, &row.Severity, &row.EventCount, &row.SAECount); err != nil {
			return nil, fmt.Errorf("scan safety row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}
