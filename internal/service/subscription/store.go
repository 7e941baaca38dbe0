package subscription

import "context"

// Store is the boolean storage contract the workflow depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// IsSubscribed reports whether the normalized email is already stored.
	// Implementations fail closed: a storage error yields false.
	IsSubscribed(ctx context.Context, email string) bool

	// AddSubscriber creates a new active subscriber with a fresh id.
	// It returns false when the write could not be completed.
	AddSubscriber(ctx context.Context, email string) bool
}
