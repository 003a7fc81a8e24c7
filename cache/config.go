package cache

import "github.com/relaywire/relay-go/model"

// defaultMessageCacheSize is the per-channel message history length kept
// once a channel's cache exists, named rather than left for callers to
// guess at.
const defaultMessageCacheSize = 100

// Config controls which resource families the cache maintains and how
// large the per-channel message history grows. Generalized from four ad
// hoc caching booleans (users, members, requested members, mutual guilds)
// into a single ResourceType bitmask.
type Config struct {
	// ResourceTypes gates which dispatch-affected resource families are
	// stored at all. Defaults to model.ResourceTypeAll.
	ResourceTypes model.ResourceType

	// MessageCacheSize bounds the number of messages retained per
	// channel. Defaults to 100.
	MessageCacheSize int

	// CheckMemberCommunicationDisabled is not read by Cache.Permissions:
	// every handle it returns starts with timeout masking enabled, and
	// Permissions.CheckMemberCommunicationDisabled toggles it per handle.
	CheckMemberCommunicationDisabled bool
}

// WithDefaults returns a copy of cfg with zero-valued optional fields
// filled in.
func (cfg Config) WithDefaults() Config {
	if cfg.ResourceTypes == 0 {
		cfg.ResourceTypes = model.ResourceTypeAll
	}

	if cfg.MessageCacheSize == 0 {
		cfg.MessageCacheSize = defaultMessageCacheSize
	}

	return cfg
}
