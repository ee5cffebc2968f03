package domain

import "context"

// Database defines lifecycle operations for a backing store that needs
// setup and teardown. The in-memory repository has neither and does not
// implement it.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
