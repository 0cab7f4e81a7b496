package note

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, n *Note) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO research_notes (note_id, study_id, note_type, note_title,
			note_text, note_priority, note_date, created_by, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		n.NoteID, n.StudyID, n.NoteType, n.NoteTitle,
		n.NoteText, n.NotePriority, n.NoteDate, n.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *PGRepository) Search(ctx context.Context, query string, dateFrom time.Time) ([]*SearchResult, error) {
	sql := `
		SELECT n.note_id, n.study_id, n.note_type, n.note_title, n.note_text,
			n.note_priority, n.note_date, n.created_by, n.created_date,
			s.study_name
		FROM research_notes n
		JOIN studies s ON s.study_id = n.study_id
		WHERE n.note_date >= $1`
	args := []interface{}{dateFrom}

	if query != "" {
		sql += ` AND (n.note_title ILIKE '%' || $2 || '%' OR n.note_text ILIKE '%' || $2 || '%')`
		args = append(args, query)
	}
	sql += fmt.Sprintf(` ORDER BY n.note_date DESC LIMIT %d`, searchLimit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var results []*SearchResult
	for rows.Next() {
		var sr SearchResult
		err := rows.Scan(
			&sr.NoteID, &sr.StudyID, &sr.NoteType, &sr.NoteTitle, &sr.NoteText,
			&sr.NotePriority, &sr.NoteDate, &sr.CreatedBy, &sr.CreatedDate,
			&sr.StudyName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		results = append(results, &sr)
	}
	return results, rows.Err()
}
