package setting

import "context"

// Service is the injected configuration provider. Reads go through an
// in-process cache that is invalidated on every local write; entries also
// expire on a short TTL so writes from other processes converge.
type Service interface {
	// GetString returns the raw stored value. ok is false when the key has
	// never been set; that is not an error.
	GetString(ctx context.Context, key string) (value string, ok bool, err error)

	// GetBool interprets the stored value as a boolean ("true" or "1").
	// When the key is absent and it names an AI sub-flag and def is false,
	// a present true-ish master flag satisfies it; otherwise def applies.
	GetBool(ctx context.Context, key string, def bool) (bool, error)

	// GetNumber interprets the stored value as a float. Absent keys read
	// as 0; malformed values fail with ConfigParseError.
	GetNumber(ctx context.Context, key string) (float64, error)

	// Set upserts a setting on behalf of an admin.
	Set(ctx context.Context, key, value, description string, updatedBy int64) error

	// InitializeDefaults upserts every shipped default key. Existing
	// values are overwritten: this is a reset to shipped defaults, not a
	// one-time seed.
	InitializeDefaults(ctx context.Context, adminUserID int64) error

	// List returns all stored settings for the admin console.
	List(ctx context.Context) ([]*Setting, error)
}
