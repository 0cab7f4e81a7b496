package participant

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crdc/crdc/internal/platform/db"
)

const participantCols = `participant_id, study_id, participant_number,
	enrollment_date, consent_date, demographic_group, inclusion_criteria_met,
	exclusion_criteria_met, participant_status, created_date`

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanParticipant(row pgx.Row) (*Participant, error) {
	var p Participant
	err := row.Scan(
		&p.ParticipantID, &p.StudyID, &p.ParticipantNumber,
		&p.EnrollmentDate, &p.ConsentDate, &p.DemographicGroup,
		&p.InclusionCriteriaMet, &p.ExclusionCriteriaMet,
		&p.ParticipantStatus, &p.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) EnrollWithCounter(ctx context.Context, p *Participant) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO participants (participant_id, study_id,
				participant_number, enrollment_date, consent_date,
				demographic_group, inclusion_criteria_met,
				exclusion_criteria_met, participant_status, created_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
			p.ParticipantID, p.StudyID, p.ParticipantNumber,
			p.EnrollmentDate, p.ConsentDate, p.DemographicGroup,
			p.InclusionCriteriaMet, p.ExclusionCriteriaMet,
			p.ParticipantStatus)
		if err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE studies
			SET current_enrollment = current_enrollment + 1
			WHERE study_id = $1`, p.StudyID)
		if err != nil {
			return fmt.Errorf("bump enrollment counter: %w", err)
		}
		return nil
	})
}

func (r *PGRepository) ListActiveByStudy(ctx context.Context, studyID string, limit, offset int) ([]*Participant, int, error) {
	total, err := r.CountActiveByStudy(ctx, studyID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM participants
		WHERE study_id = $1 AND participant_status = 'ACTIVE'
		ORDER BY participant_number
		LIMIT $2 OFFSET $3`, participantCols), studyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, total, rows.Err()
}

func (r *PGRepository) CountActiveByStudy(ctx context.Context, studyID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM participants
		WHERE study_id = $1 AND participant_status = 'ACTIVE'`, studyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}
