package observation

import "context"

// Repository is the persistence boundary for observations.
type Repository interface {
	// CreateForParticipant resolves the participant number within the
	// observation's study and inserts the row, both inside one transaction
	// so the resolution cannot go stale. The resolved participant id is set
	// on o before return.
	CreateForParticipant(ctx context.Context, o *Observation, participantNumber string) error
}
