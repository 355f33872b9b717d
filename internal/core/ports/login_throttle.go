package ports

import "context"

// LoginThrottle limits failed login attempts per account. Implementations
// must be safe for concurrent use; errors from the backing store should be
// treated as "not blocked" by callers so a throttle outage never locks
// everyone out.
type LoginThrottle interface {
	// Blocked reports whether the account has exceeded the failure budget.
	Blocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the account.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}
