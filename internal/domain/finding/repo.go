package finding

import "context"

// Repository is the persistence boundary for findings.
type Repository interface {
	Create(ctx context.Context, f *Finding) error
}
