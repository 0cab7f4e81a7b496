package reports

import (
	"context"
	"math"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// StudySummary returns per-study capture totals for active studies.
func (s *Service) StudySummary(ctx context.Context) ([]*StudySummaryRow, error) {
	return s.repo.StudySummary(ctx)
}

// Enrollment returns per-study enrollment progress with the current-vs-target
// chart series.
func (s *Service) Enrollment(ctx context.Context) (*EnrollmentReport, error) {
	rows, err := s.repo.EnrollmentRows(ctx)
	if err != nil {
		return nil, err
	}

	report := &EnrollmentReport{Rows: rows}
	current := ChartSeries{Name: "Current"}
	target := ChartSeries{Name: "Target"}
	for _, row := range rows {
		row.EnrollmentPercent = roundPercent(row.CurrentEnrollment, row.TargetEnrollment)
		report.Chart.Labels = append(report.Chart.Labels, row.StudyName)
		current.Values = append(current.Values, float64(row.CurrentEnrollment))
		target.Values = append(target.Values, float64(row.TargetEnrollment))
	}
	report.Chart.Series = []ChartSeries{current, target}
	return report, nil
}

// Safety returns adverse-event and lab-abnormality counts grouped by type
// and severity, with the SAE total and alert flag.
func (s *Service) Safety(ctx context.Context) (*SafetyReport, error) {
	rows, err := s.repo.SafetyRows(ctx)
	if err != nil {
		return nil, err
	}

	report := &SafetyReport{Rows: rows}
	for _, row := range rows {
		report.TotalSAEs += row.SAECount
	}
	report.Alert = report.TotalSAEs > 0
	report.Chart = buildSafetyChart(rows)
	return report, nil
}

// roundPercent returns current/target as a percentage rounded to one decimal
// place, with a zero target reading as 0.
func roundPercent(current, target int) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(float64(current)/float64(target)*1000) / 10
}

// buildSafetyChart pivots the grouped rows into one series per finding type
// with severities on the label axis.
func buildSafetyChart(rows []*SafetyRow) Chart {
	var chart Chart
	labelIdx := make(map[string]int)
	seriesIdx := make(map[string]int)

	for _, row := range rows {
		if _, ok := labelIdx[row.Severity]; !ok {
			labelIdx[row.Severity] = len(chart.Labels)
			chart.Labels = append(chart.Labels, row.Severity)
		}
		if _, ok := seriesIdx[row.FindingType]; !ok {
			seriesIdx[row.FindingType] = len(chart.Series)
			chart.Series = append(chart.Series, ChartSeries{Name: row.FindingType})
		}
	}
	for i := range chart.Series {
		chart.Series[i].Values = make([]float64, len(chart.Labels))
	}
	for _, row := range rows {
		chart.Series[seriesIdx[row.FindingType]].Values[labelIdx[row.Severity]] = float64(row.EventCount)
	}
	return chart
}
