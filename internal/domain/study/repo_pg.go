package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crdc/crdc/internal/platform/db"
)

const studyCols = `study_id, study_name, study_number, principal_investigator,
	study_phase, study_type, study_description, target_enrollment,
	current_enrollment, study_status, study_start_date, created_date`

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanStudy(row pgx.Row) (*Study, error) {
	var s Study
	err := row.Scan(
		&s.StudyID, &s.StudyName, &s.StudyNumber, &s.PrincipalInvestigator,
		&s.StudyPhase, &s.StudyType, &s.StudyDescription, &s.TargetEnrollment,
		&s.CurrentEnrollment, &s.StudyStatus, &s.StudyStartDate, &s.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) CreateWithGrant(ctx context.Context, s *Study, grant *AccessGrant) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO studies (study_id, study_name, study_number,
				principal_investigator, study_phase, study_type,
				study_description, target_enrollment, current_enrollment,
				study_status, study_start_date, created_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())`,
			s.StudyID, s.StudyName, s.StudyNumber, s.PrincipalInvestigator,
			s.StudyPhase, s.StudyType, s.StudyDescription, s.TargetEnrollment,
			s.CurrentEnrollment, s.StudyStatus, s.StudyStartDate)
		if err != nil {
			return fmt.Errorf("insert study: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_study_access (user_name, study_id, access_role, is_active)
			VALUES ($1, $2, $3, TRUE)`,
			grant.UserName, grant.StudyID, grant.AccessRole)
		if err != nil {
			return fmt.Errorf("insert access grant: %w", err)
		}
		return nil
	})
}

func (r *PGRepository) GetByID(ctx context.Context, studyID string) (*Study, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM studies WHERE study_id = $1`, studyCols),
		studyID)
	s, err := scanStudy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get study: %w", err)
	}
	return s, nil
}

// Newest studies first, matching the order coordinators pick from.
var listActiveQuery = fmt.Sprintf(`
	SELECT %s FROM studies
	WHERE study_status = 'ACTIVE'
	ORDER BY created_date DESC`, studyCols)

func (r *PGRepository) ListActive(ctx context.Context) ([]*Study, error) {
	rows, err := r.pool.Query(ctx, listActiveQuery)
	if err != nil {
		return nil, fmt.Errorf("list active studies: %w", err)
	}
	defer rows.Close()

	var studies []*Study
	for rows.Next() {
		s, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study: %w", err)
		}
		studies = append(studies, s)
	}
	return studies, rows.Err()
}
