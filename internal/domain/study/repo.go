package study

import "context"

// Repository is the persistence boundary for studies.
type Repository interface {
	// CreateWithGrant inserts the study and an access grant for its creator
	// in one transaction.
	CreateWithGrant(ctx context.Context, s *Study, grant *AccessGrant) error
	GetByID(ctx context.Context, studyID string) (*Study, error)
	ListActive(ctx context.Context) ([]*Study, error)
}
