package refdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) StudyTypes(ctx context.Context) ([]string, error) {
	return r.listTypes(ctx, `SELECT type_name FROM study_types WHERE is_active = TRUE ORDER BY type_name`)
}

func (r *PGRepository) NoteTypes(ctx context.Context) ([]string, error) {
	return r.listTypes(ctx, `SELECT type_name FROM note_types WHERE is_active = TRUE ORDER BY type_name`)
}

func (r *PGRepository) listTypes(ctx context.Context, sql string) ([]string, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query reference types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan reference type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
