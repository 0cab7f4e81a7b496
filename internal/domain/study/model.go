package study

import "time"

// Study is a research study record. CurrentEnrollment is maintained by the
// participant enrollment flow, never written directly by callers.
type Study struct {
	StudyID               string     `json:"study_id"`
	StudyName             string     `json:"study_name"`
	StudyNumber           string     `json:"study_number"`
	PrincipalInvestigator string     `json:"principal_investigator"`
	StudyPhase            string     `json:"study_phase"`
	StudyType             string     `json:"study_type"`
	StudyDescription      string     `json:"study_description,omitempty"`
	TargetEnrollment      int        `json:"target_enrollment"`
	CurrentEnrollment     int        `json:"current_enrollment"`
	StudyStatus           string     `json:"study_status"`
	StudyStartDate        *time.Time `json:"study_start_date,omitempty"`
	CreatedDate           time.Time  `json:"created_date"`
}

// ActiveStudy is a Study decorated with its enrollment progress.
type ActiveStudy struct {
	Study
	EnrollmentPercent float64 `json:"enrollment_percent"`
}

// EnrollmentPercent returns current/target as a percentage. A zero target
// reads as 0 rather than dividing by zero.
func EnrollmentPercent(current, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(current) / float64(target) * 100
}

// AccessGrant ties a user to a study with a role.
type AccessGrant struct {
	UserName   string `json:"user_name"`
	StudyID    string `json:"study_id"`
	AccessRole string `json:"access_role"`
	IsActive   bool   `json:"is_active"`
}
