package finding

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

func (r *PGRepository) Create(ctx context.Context, f *Finding) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO findings (finding_id, study_id, finding_type,
			finding_description, severity, relationship_to_intervention,
			action_taken, outcome, sae_reported, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
		f.FindingID, f.StudyID, f.FindingType,
		f.FindingDescription, f.Severity, f.RelationshipToIntervention,
		f.ActionTaken, f.Outcome, f.SAEReported)
	if err != nil {
		return fmt.Errorf("insert finding: %w", err)
	}
	return nil
}
