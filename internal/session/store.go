package session

import "context"

// Store keeps sessions keyed by id. Implementations must make Append atomic
// per session: concurrent appends to one id all land, in some order.
type Store interface {
	// Create stores a new session. Returns ErrExists if the id is taken.
	Create(ctx context.Context, s *Session) error

	// Get returns a copy of the session, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Append adds one turn and returns a copy of the updated session, or
	// ErrNotFound.
	Append(ctx context.Context, id string, t Turn) (*Session, error)

	// Len returns the number of live sessions.
	Len(ctx context.Context) (int, error)
}
