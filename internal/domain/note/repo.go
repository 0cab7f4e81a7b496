package note

import (
	"context"
	"time"
)

const searchLimit = 100

// Repository is the persistence boundary for research notes.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	// Search returns notes on or after dateFrom, newest first, capped at
	// searchLimit rows. A non-empty query matches title or text,
	// case-insensitively.
	Search(ctx context.Context, query string, dateFrom time.Time) ([]*SearchResult, error)
}
