package observation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crdc/crdc/internal/platform/db"
)

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) CreateForParticipant(ctx context.Context, o *Observation, participantNumber string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT participant_id FROM participants
			WHERE study_id = $1 AND participant_number = $2
				AND participant_status = 'ACTIVE'`,
			o.StudyID, participantNumber).Scan(&o.ParticipantID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrParticipantNotFound
			}
			return fmt.Errorf("resolve participant: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO observations (observation_id, study_id, participant_id,
				observation_date, visit_number, measurement_name,
				measurement_value, measurement_unit, created_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
			o.ObservationID, o.StudyID, o.ParticipantID,
			o.ObservationDate, o.VisitNumber, o.MeasurementName,
			o.MeasurementValue, o.MeasurementUnit)
		if err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
		return nil
	})
}
