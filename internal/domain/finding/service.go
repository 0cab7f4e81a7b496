package finding

import (
	"context"
	"fmt"
	"time"

	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/cache"
	"github.com/crdc/crdc/internal/platform/ident"
)

// SAEWarning accompanies every finding stored with the SAE flag set. The
// notification itself is out of band; the message is a reminder, not a hook.
const SAEWarning = "serious adverse event recorded: IRB notification required within 24 hours"

var validTypes = map[string]bool{
	TypeAdverseEvent:     true,
	"Efficacy Outcome":   true,
	"Lab Abnormality":    true,
	"Protocol Deviation": true,
	"Other":              true,
}

var validSeverities = map[string]bool{
	"Mild":     true,
	"Moderate": true,
	"Severe":   true,
}

var validRelationships = map[string]bool{
	"Not Related": true,
	"Unlikely":    true,
	"Possible":    true,
	"Probable":    true,
	"Definite":    true,
}

var validOutcomes = map[string]bool{
	"Ongoing":   true,
	"Resolved":  true,
	"Resolving": true,
	"Fatal":     true,
	"Unknown":   true,
}

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

// RecordInput carries the finding form fields. Relationship and SAEReported
// are only honored for adverse events.
type RecordInput struct {
	FindingType                string
	FindingDescription         string
	Severity                   string
	RelationshipToIntervention string
	ActionTaken                string
	Outcome                    string
	SAEReported                bool
}

// RecordResult is a stored finding plus the SAE warning when the stored
// flag is set.
type RecordResult struct {
	Finding    *Finding `json:"finding"`
	SAEWarning string   `json:"sae_warning,omitempty"`
}

// Record stores a finding against studyID. For any type other than adverse
// event, the relationship is forced to "Not Applicable" and the SAE flag to
// false no matter what the caller sent.
func (s *Service) Record(ctx context.Context, studyID string, in RecordInput, recordedBy string) (*RecordResult, error) {
	if in.FindingDescription == "" {
		return nil, fmt.Errorf("finding_description is required")
	}
	if in.FindingType == "" {
		return nil, fmt.Errorf("finding_type is required")
	}
	if !validTypes[in.FindingType] {
		return nil, fmt.Errorf("invalid finding type: %s", in.FindingType)
	}
	if in.Severity == "" {
		in.Severity = "Mild"
	}
	if !validSeverities[in.Severity] {
		return nil, fmt.Errorf("invalid severity: %s", in.Severity)
	}
	if in.Outcome == "" {
		in.Outcome = "Ongoing"
	}
	if !validOutcomes[in.Outcome] {
		return nil, fmt.Errorf("invalid outcome: %s", in.Outcome)
	}

	relationship := "Not Applicable"
	sae := false
	if in.FindingType == TypeAdverseEvent {
		relationship = in.RelationshipToIntervention
		if relationship == "" {
			relationship = "Not Related"
		}
		if !validRelationships[relationship] {
			return nil, fmt.Errorf("invalid relationship: %s", relationship)
		}
		sae = in.SAEReported
	}

	f := &Finding{
		FindingID:                  ident.New(ident.FindingPrefix, s.now()),
		StudyID:                    studyID,
		FindingType:                in.FindingType,
		FindingDescription:         in.FindingDescription,
		Severity:                   in.Severity,
		RelationshipToIntervention: relationship,
		Outcome:                    in.Outcome,
		SAEReported:                sae,
		CreatedDate:                s.now(),
	}
	if in.ActionTaken != "" {
		action := in.ActionTaken
		f.ActionTaken = &action
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	_ = s.recorder.RecordChange(ctx, "findings", "INSERT", f.FindingID, recordedBy)
	s.cache.Invalidate(cache.KeyDashboardMetrics)

	res := &RecordResult{Finding: f}
	if f.SAEReported {
		res.SAEWarning = SAEWarning
	}
	return res, nil
}
