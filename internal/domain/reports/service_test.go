package reports

import (
	"context"
	"reflect"
	"testing"
)

type mockRepo struct {
	enrollment []*EnrollmentRow
	safety     []*SafetyRow
}

func (m *mockRepo) StudySummary(_ context.Context) ([]*StudySummaryRow, error) {
	return nil, nil
}

func (m *mockRepo) EnrollmentRows(_ context.Context) ([]*EnrollmentRow, error) {
	return m.enrollment, nil
}

func (m *mockRepo) SafetyRows(_ context.Context) ([]*SafetyRow, error) {
	return m.safety, nil
}

func TestEnrollmentRounding(t *testing.T) {
	svc := NewService(&mockRepo{enrollment: []*EnrollmentRow{
		{StudyName: "A", CurrentEnrollment: 1, TargetEnrollment: 3},
		{StudyName: "B", CurrentEnrollment: 10, TargetEnrollment: 0},
		{StudyName: "C", CurrentEnrollment: 75, TargetEnrollment: 100},
	}})

	report, err := svc.Enrollment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := report.Rows[0].EnrollmentPercent; got != 33.3 {
		t.Errorf("expected 33.3, got %v", got)
	}
	if got := report.Rows[1].EnrollmentPercent; got != 0 {
		t.Errorf("expected 0 for zero target, got %v", got)
	}
	if got := report.Rows[2].EnrollmentPercent; got != 75 {
		t.Errorf("expected 75, got %v", got)
	}

	if !reflect.DeepEqual(report.Chart.Labels, []string{"A", "B", "C"}) {
		t.Errorf("unexpected chart labels %v", report.Chart.Labels)
	}
	if len(report.Chart.Series) != 2 || report.Chart.Series[0].Name != "Current" || report.Chart.Series[1].Name != "Target" {
		t.Errorf("unexpected chart series %+v", report.Chart.Series)
	}
	if !reflect.DeepEqual(report.Chart.Series[0].Values, []float64{1, 10, 75}) {
		t.Errorf("unexpected current values %v", report.Chart.Series[0].Values)
	}
}

func TestSafetyAlert(t *testing.T) {
	svc := NewService(&mockRepo{safety: []*SafetyRow{
		{FindingType: "Adverse Event", Severity: "Mild", EventCount: 5, SAECount: 0},
		{FindingType: "Adverse Event", Severity: "Severe", EventCount: 2, SAECount: 2},
		{FindingType: "Lab Abnormality", Severity: "Mild", EventCount: 3, SAECount: 0},
	}})

	report, err := svc.Safety(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalSAEs != 2 || !report.Alert {
		t.Errorf("expected 2 SAEs with alert, got %d/%v", report.TotalSAEs, report.Alert)
	}

	if !reflect.DeepEqual(report.Chart.Labels, []string{"Mild", "Severe"}) {
		t.Errorf("unexpected labels %v", report.Chart.Labels)
	}
	if len(report.Chart.Series) != 2 {
		t.Fatalf("expected two series, got %d", len(report.Chart.Series))
	}
	// Adverse Event: Mild 5, Severe 2. Lab Abnormality: Mild 3, Severe 0.
	if !reflect.DeepEqual(report.Chart.Series[0].Values, []float64{5, 2}) {
		t.Errorf("unexpected AE series %v", report.Chart.Series[0].Values)
	}
	if !reflect.DeepEqual(report.Chart.Series[1].Values, []float64{3, 0}) {
		t.Errorf("unexpected lab series %v", report.Chart.Series[1].Values)
	}
}

func TestSafetyNoFindings(t *testing.T) {
	svc := NewService(&mockRepo{})

	report, err := svc.Safety(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Alert || report.TotalSAEs != 0 {
		t.Errorf("expected quiet report, got %+v", report)
	}
}
