package observation

import "time"

// Observation is one measurement taken on a participant during a visit.
// MeasurementUnit is nil when the value is unitless.
type Observation struct {
	ObservationID    string    `json:"observation_id"`
	StudyID          string    `json:"study_id"`
	ParticipantID    string    `json:"participant_id"`
	ObservationDate  time.Time `json:"observation_date"`
	VisitNumber      int       `json:"visit_number"`
	MeasurementName  string    `json:"measurement_name"`
	MeasurementValue string    `json:"measurement_value"`
	MeasurementUnit  *string   `json:"measurement_unit,omitempty"`
	CreatedDate      time.Time `json:"created_date"`
}
