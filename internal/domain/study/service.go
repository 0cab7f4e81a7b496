package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/cache"
	"github.com/crdc/crdc/internal/platform/ident"
)

var ErrNotFound = errors.New("study not found")

var validPhases = map[string]bool{
	"Planning": true,
	"Active":   true,
	"Analysis": true,
	"Complete": true,
}

const (
	defaultTargetEnrollment = 50
	defaultStudyType        = "Clinical Trial"
	creatorAccessRole       = "PI"
)

type Service struct {
	repo     Repository
	cache    *cache.Cache
	ttl      time.Duration
	recorder audit.ChangeRecorder
	now      func() time.Time
}

func NewService(repo Repository, c *cache.Cache, ttl time.Duration, recorder audit.ChangeRecorder) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		ttl:      ttl,
		recorder: recorder,
		now:      time.Now,
	}
}

// CreateStudyInput carries the caller-supplied fields of a new study.
type CreateStudyInput struct {
	StudyName             string
	StudyNumber           string
	PrincipalInvestigator string
	StudyPhase            string
	StudyType             string
	StudyDescription      string
	TargetEnrollment      int
	StudyStartDate        *time.Time
}

// CreateStudy registers a new study as ACTIVE with zero enrollment and
// grants its creator access in the same transaction.
func (s *Service) CreateStudy(ctx context.Context, in CreateStudyInput, createdBy string) (*Study, error) {
	if in.StudyName == "" {
		return nil, fmt.Errorf("study_name is required")
	}
	if in.StudyNumber == "" {
		return nil, fmt.Errorf("study_number is required")
	}
	if in.PrincipalInvestigator == "" {
		return nil, fmt.Errorf("principal_investigator is required")
	}
	if in.StudyType == "" {
		in.StudyType = defaultStudyType
	}
	if in.StudyPhase != "" && !validPhases[in.StudyPhase] {
		return nil, fmt.Errorf("invalid study phase: %s", in.StudyPhase)
	}
	if in.StudyPhase == "" {
		in.StudyPhase = "Planning"
	}
	if in.TargetEnrollment <= 0 {
		in.TargetEnrollment = defaultTargetEnrollment
	}

	st := &Study{
		StudyID:               ident.New(ident.StudyPrefix, s.now()),
		StudyName:             in.StudyName,
		StudyNumber:           in.StudyNumber,
		PrincipalInvestigator: in.PrincipalInvestigator,
		StudyPhase:            in.StudyPhase,
		StudyType:             in.StudyType,
		StudyDescription:      in.StudyDescription,
		TargetEnrollment:      in.TargetEnrollment,
		CurrentEnrollment:     0,
		StudyStatus:           "ACTIVE",
		StudyStartDate:        in.StudyStartDate,
		CreatedDate:           s.now(),
	}
	grant := &AccessGrant{
		UserName:   createdBy,
		StudyID:    st.StudyID,
		AccessRole: creatorAccessRole,
		IsActive:   true,
	}

	if err := s.repo.CreateWithGrant(ctx, st, grant); err != nil {
		return nil, err
	}

	// Audit failures are non-fatal; the write already landed.
	_ = s.recorder.RecordChange(ctx, "studies", "INSERT", st.StudyID, createdBy)
	_ = s.recorder.RecordChange(ctx, "user_study_access", "INSERT", st.StudyID, createdBy)

	s.cache.Invalidate(cache.KeyActiveStudies, cache.KeyDashboardMetrics)

	return st, nil
}

// ListActive returns active studies with enrollment progress, cached for the
// configured TTL.
func (s *Service) ListActive(ctx context.Context) ([]*ActiveStudy, error) {
	v, err := s.cache.GetOrLoad(cache.KeyActiveStudies, s.ttl, func() (interface{}, error) {
		studies, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		active := make([]*ActiveStudy, 0, len(studies))
		for _, st := range studies {
			active = append(active, &ActiveStudy{
				Study:             *st,
				EnrollmentPercent: EnrollmentPercent(st.CurrentEnrollment, st.TargetEnrollment),
			})
		}
		return active, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*ActiveStudy), nil
}

// GetStudy returns a study by id.
func (s *Service) GetStudy(ctx context.Context, studyID string) (*Study, error) {
	return s.repo.GetByID(ctx, studyID)
}

// StudyName verifies a study exists and returns its name. Used by the
// session selection flow.
func (s *Service) StudyName(ctx context.Context, studyID string) (string, error) {
	st, err := s.repo.GetByID(ctx, studyID)
	if err != nil {
		return "", err
	}
	return st.StudyName, nil
}
