package setting

import "context"

// Repository defines the interface for settings persistence.
type Repository interface {
	// Get retrieves a setting by key. Returns NotFound when the key has
	// never been set; that absence is a valid state, not a failure.
	Get(ctx context.Context, key string) (*Setting, error)

	// Upsert creates the setting if missing, otherwise overwrites value,
	// description, updated_by and updated_at.
	Upsert(ctx context.Context, s *Setting) error

	// List retrieves all settings ordered by key
	List(ctx context.Context) ([]*Setting, error)
}
