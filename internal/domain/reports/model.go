package reports

// StudySummaryRow is one study's capture totals joined with enrollment.
type StudySummaryRow struct {
	StudyName             string `json:"study_name"`
	PrincipalInvestigator string `json:"principal_investigator"`
	CurrentEnrollment     int    `json:"current_enrollment"`
	TargetEnrollment      int    `json:"target_enrollment"`
	TotalNotes            int    `json:"total_notes"`
	TotalObservations     int    `json:"total_observations"`
	TotalFindings         int    `json:"total_findings"`
}

// EnrollmentRow is one study's enrollment progress, percent rounded to one
// decimal place.
type EnrollmentRow struct {
	StudyName         string  `json:"study_name"`
	TargetEnrollment  int     `json:"target_enrollment"`
	CurrentEnrollment int     `json:"current_enrollment"`
	EnrollmentPercent float64 `json:"enrollment_percent"`
}

// ChartSeries is one named series of a grouped bar chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart is the presentation derivative some reports ship alongside their
// rows: labels on one axis, one series per group.
type Chart struct {
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// EnrollmentReport pairs the enrollment rows with a current-vs-target chart.
type EnrollmentReport struct {
	Rows  []*EnrollmentRow `json:"rows"`
	Chart Chart            `json:"chart"`
}

// SafetyRow is an adverse-event count grouped by type and severity.
type SafetyRow struct {
	FindingType string `json:"finding_type"`
	Severity    string `json:"severity"`
	EventCount  int    `json:"event_count"`
	SAECount    int    `json:"sae_count"`
}

// SafetyReport aggregates safety-relevant findings. Alert is set whenever
// any serious adverse event exists.
type SafetyReport struct {
	Rows      []*SafetyRow `json:"rows"`
	TotalSAEs int          `json:"total_saes"`
	Alert     bool         `json:"alert"`
	Chart     Chart        `json:"chart"`
}
