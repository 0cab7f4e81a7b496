package participant

import "context"

// Repository is the persistence boundary for participants.
type Repository interface {
	// EnrollWithCounter inserts the participant and bumps the study's
	// current_enrollment in one transaction.
	EnrollWithCounter(ctx context.Context, p *Participant) error
	// ListActiveByStudy returns one page of active participants ordered by
	// number, plus the total active count.
	ListActiveByStudy(ctx context.Context, studyID string, limit, offset int) ([]*Participant, int, error)
	CountActiveByStudy(ctx context.Context, studyID string) (int, error)
}
