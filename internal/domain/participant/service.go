package participant

import (
	"context"
	"fmt"
	"time"

	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/cache"
	"github.com/crdc/crdc/internal/platform/ident"
)

type Service struct {
	repo     Repository
	cache    *cache.Cache
	recorder audit.ChangeRecorder
	now      func() time.Time
}

func NewService(repo Repository, c *cache.Cache, recorder audit.ChangeRecorder) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		recorder: recorder,
		now:      time.Now,
	}
}

// EnrollInput carries the screening form fields for one enrollment.
type EnrollInput struct {
	ParticipantNumber    string
	EnrollmentDate       *time.Time
	ConsentDate          *time.Time
	DemographicGroup     string
	InclusionCriteriaMet bool
	ExclusionCriteriaMet bool
}

// EnrollResult is a successful enrollment, with the eligibility warning set
// when the screening answers warrant a second look.
type EnrollResult struct {
	Participant        *Participant `json:"participant"`
	EligibilityWarning string       `json:"eligibility_warning,omitempty"`
}

// Enroll registers a participant in studyID and advances the study's
// enrollment counter atomically. Questionable eligibility produces a warning
// on the result, not a rejection.
func (s *Service) Enroll(ctx context.Context, studyID string, in EnrollInput, enrolledBy string) (*EnrollResult, error) {
	if in.ParticipantNumber == "" {
		return nil, fmt.Errorf("participant_number is required")
	}
	if in.EnrollmentDate == nil {
		return nil, fmt.Errorf("enrollment_date is required")
	}
	if in.ConsentDate == nil {
		return nil, fmt.Errorf("consent_date is required")
	}

	p := &Participant{
		ParticipantID:        ident.Participant(studyID, in.ParticipantNumber),
		StudyID:              studyID,
		ParticipantNumber:    in.ParticipantNumber,
		EnrollmentDate:       *in.EnrollmentDate,
		ConsentDate:          *in.ConsentDate,
		InclusionCriteriaMet: in.InclusionCriteriaMet,
		ExclusionCriteriaMet: in.ExclusionCriteriaMet,
		ParticipantStatus:    "ACTIVE",
		CreatedDate:          s.now(),
	}
	if in.DemographicGroup != "" {
		group := in.DemographicGroup
		p.DemographicGroup = &group
	}

	if err := s.repo.EnrollWithCounter(ctx, p); err != nil {
		return nil, err
	}

	_ = s.recorder.RecordChange(ctx, "participants", "INSERT", p.ParticipantID, enrolledBy)

	// The counter moved, so both the study list and the metrics are stale.
	s.cache.Invalidate(cache.KeyActiveStudies, cache.KeyDashboardMetrics)

	res := &EnrollResult{Participant: p}
	if p.NeedsEligibilityReview() {
		res.EligibilityWarning = EligibilityWarning
	}
	return res, nil
}

// ListActive returns one page of a study's active participants ordered by
// number, plus the total active count.
func (s *Service) ListActive(ctx context.Context, studyID string, limit, offset int) ([]*Participant, int, error) {
	return s.repo.ListActiveByStudy(ctx, studyID, limit, offset)
}

// CountActive reports how many active participants a study has. Observation
// capture uses it to refuse entry into an empty study.
func (s *Service) CountActive(ctx context.Context, studyID string) (int, error) {
	return s.repo.CountActiveByStudy(ctx, studyID)
}
