package participant

import "time"

// Participant is one enrolled subject in a study, identified externally by
// the coordinator-assigned number and internally by the compound id.
type Participant struct {
	ParticipantID        string    `json:"participant_id"`
	StudyID              string    `json:"study_id"`
	ParticipantNumber    string    `json:"participant_number"`
	EnrollmentDate       time.Time `json:"enrollment_date"`
	ConsentDate          time.Time `json:"consent_date"`
	DemographicGroup     *string   `json:"demographic_group,omitempty"`
	InclusionCriteriaMet bool      `json:"inclusion_criteria_met"`
	ExclusionCriteriaMet bool      `json:"exclusion_criteria_met"`
	ParticipantStatus    string    `json:"participant_status"`
	CreatedDate          time.Time `json:"created_date"`
}

// EligibilityWarning is returned alongside a successful enrollment whenever
// the screening answers suggest the participant may not qualify. The write
// is never blocked on it.
const EligibilityWarning = "participant may not meet eligibility criteria"

// NeedsEligibilityReview reports whether the screening answers warrant the
// warning: inclusion criteria unmet, or exclusion criteria met.
func (p *Participant) NeedsEligibilityReview() bool {
	return !p.InclusionCriteriaMet || p.ExclusionCriteriaMet
}
