package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const recentFeedLimit = 10

// Repository reads the dashboard aggregates.
type Repository interface {
	Metrics(ctx context.Context) (*Metrics, error)
	RecentNotes(ctx context.Context) ([]*RecentNote, error)
	RecentFindings(ctx context.Context) ([]*RecentFinding, error)
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Notes count by the note's own date, findings by when they were entered.
const metricsQuery = `
	SELECT
		(SELECT COUNT(*) FROM studies WHERE study_status = 'ACTIVE'),
		(SELECT COUNT(*) FROM participants WHERE participant_status = 'ACTIVE'),
		(SELECT COUNT(*) FROM research_notes WHERE note_date >= CURRENT_DATE - INTERVAL '7 days'),
		(SELECT COUNT(*) FROM findings WHERE created_date >= NOW() - INTERVAL '7 days')`

func (r *PGRepository) Metrics(ctx context.Context) (*Metrics, error) {
	var m Metrics
	err := r.pool.QueryRow(ctx, metricsQuery).
		Scan(&m.ActiveStudies, &m.ActiveParticipants, &m.RecentNotes, &m.RecentFindings)
	if err != nil {
		return nil, fmt.Errorf("query dashboard metrics: %w", err)
	}
	return &m, nil
}

func (r *PGRepository) RecentNotes(ctx context.Context) ([]*RecentNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.note_title, s.study_name, n.note_type, n.created_date
		FROM research_notes n
		JOIN studies s ON s.study_id = n.study_id
		ORDER BY n.created_date DESC
		LIMIT $1`, recentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent notes: %w", err)
	}
	defer rows.Close()

	var notes []*RecentNote
	for rows.Next() {
		var n RecentNote
		if err := rows.Scan(&n.NoteTitle, &n.StudyName, &n.NoteType, &n.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan recent note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func (r *PGRepository) RecentFindings(ctx context.Context) ([]*RecentFinding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.finding_type, s.study_name, f.severity, f.created_date
		FROM findings f
		JOIN studies s ON s.study_id = f.study_id
		ORDER BY f.created_date DESC
		LIMIT $1`, recentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent findings: %w", err)
	}
	defer rows.Close()

	var findings []*RecentFinding
	for rows.Next() {
		var f RecentFinding
		if err := rows.Scan(&f.FindingType, &f.StudyName, &f.Severity, &f.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan recent finding: %w", err)
		}
		findings = append(findings, &f)
	}
	return findings, rows.Err()
}
