package note

import (
	"context"
	"fmt"
	"time"

	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/cache"
	"github.com/crdc/crdc/internal/platform/ident"
)

// searchWindowDays bounds an unconstrained search to the recent past.
const searchWindowDays = 30

var validPriorities = map[string]bool{
	"Normal": true,
	"High":   true,
	"Urgent": true,
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

// CreateInput carries the quick-note form fields.
type CreateInput struct {
	NoteType     string
	NoteTitle    string
	NoteText     string
	NotePriority string
}

// Create records a note against studyID dated today.
func (s *Service) Create(ctx context.Context, studyID string, in CreateInput, createdBy string) (*Note, error) {
	if in.NoteTitle == "" {
		return nil, fmt.Errorf("note_title is required")
	}
	if in.NoteText == "" {
		return nil, fmt.Errorf("note_text is required")
	}
	if in.NoteType == "" {
		in.NoteType = "Progress Note"
	}
	if in.NotePriority == "" {
		in.NotePriority = "Normal"
	}
	if !validPriorities[in.NotePriority] {
		return nil, fmt.Errorf("invalid note priority: %s", in.NotePriority)
	}

	now := s.now()
	n := &Note{
		NoteID:       ident.New(ident.NotePrefix, now),
		StudyID:      studyID,
		NoteType:     in.NoteType,
		NoteTitle:    in.NoteTitle,
		NoteText:     in.NoteText,
		NotePriority: in.NotePriority,
		NoteDate:     now.Truncate(24 * time.Hour),
		CreatedBy:    createdBy,
		CreatedDate:  now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	_ = s.recorder.RecordChange(ctx, "research_notes", "INSERT", n.NoteID, createdBy)
	s.cache.Invalidate(cache.KeyDashboardMetrics)

	return n, nil
}

// Search returns recent notes matching query. When dateFrom is zero the
// window defaults to the last searchWindowDays days; the date floor is
// always applied.
func (s *Service) Search(ctx context.Context, query string, dateFrom time.Time) ([]*SearchResult, error) {
	if dateFrom.IsZero() {
		dateFrom = s.now().AddDate(0, 0, -searchWindowDays)
	}
	return s.repo.Search(ctx, query, dateFrom)
}
