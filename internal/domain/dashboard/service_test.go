package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/crdc/crdc/internal/platform/cache"
)

type mockRepo struct {
	metrics      Metrics
	metricsCalls int
}

func (m *mockRepo) Metrics(_ context.Context) (*Metrics, error) {
	m.metricsCalls++
	out := m.metrics
	return &out, nil
}

func (m *mockRepo) RecentNotes(_ context.Context) ([]*RecentNote, error) {
	return nil, nil
}

func (m *mockRepo) RecentFindings(_ context.Context) ([]*RecentFinding, error) {
	return nil, nil
}

func TestGetMetricsCaches(t *testing.T) {
	repo := &mockRepo{metrics: Metrics{ActiveStudies: 4, ActiveParticipants: 87}}
	svc := NewService(repo, cache.New(), time.Minute)

	m, err := svc.GetMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ActiveStudies != 4 || m.ActiveParticipants != 87 {
		t.Errorf("unexpected metrics %+v", m)
	}

	if _, err := svc.GetMetrics(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.metricsCalls != 1 {
		t.Errorf("expected cached second read, repo called %d times", repo.metricsCalls)
	}
}

func TestMetricsQueryWindows(t *testing.T) {
	if !strings.Contains(metricsQuery, "note_date >= CURRENT_DATE - INTERVAL '7 days'") {
		t.Error("expected note count windowed on note_date")
	}
	if !strings.Contains(metricsQuery, "created_date >= NOW() - INTERVAL '7 days'") {
		t.Error("expected finding count windowed on created_date")
	}
}

func TestGetMetricsRefreshesAfterInvalidation(t *testing.T) {
	repo := &mockRepo{metrics: Metrics{ActiveStudies: 1}}
	c := cache.New()
	svc := NewService(repo, c, time.Minute)

	if _, err := svc.GetMetrics(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.metrics.ActiveStudies = 2
	c.Invalidate(cache.KeyDashboardMetrics)

	m, err := svc.GetMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ActiveStudies != 2 {
		t.Errorf("expected fresh metrics after invalidation, got %+v", m)
	}
}
