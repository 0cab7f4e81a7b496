package finding

import "time"

// TypeAdverseEvent is the only finding type whose relationship and SAE
// fields carry meaning; every other type has them forced to neutral values.
const TypeAdverseEvent = "Adverse Event"

// Finding is a clinically significant observation recorded against a study.
type Finding struct {
	FindingID                  string    `json:"finding_id"`
	StudyID                    string    `json:"study_id"`
	FindingType                string    `json:"finding_type"`
	FindingDescription         string    `json:"finding_description"`
	Severity                   string    `json:"severity"`
	RelationshipToIntervention string    `json:"relationship_to_intervention"`
	ActionTaken                *string   `json:"action_taken,omitempty"`
	Outcome                    string    `json:"outcome"`
	SAEReported                bool      `json:"sae_reported"`
	CreatedDate                time.Time `json:"created_date"`
}
