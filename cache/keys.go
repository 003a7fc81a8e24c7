package cache

import "github.com/relaywire/relay-go/model"

// memberKey addresses a member within a guild. Composite keys implement
// Hashable by folding their fields with FNV-style multiplication, the same
// technique savsgio/gotils' internal hash helpers use for byte slices,
// adapted here for fixed-width integer keys instead of strings.
type memberKey struct {
	GuildID model.GuildID
	UserID  model.UserID
}

func (k memberKey) Hash() uint64 {
	return combineHash(k.GuildID.Hash(), k.UserID.Hash())
}

// presenceKey addresses a presence within a guild.
type presenceKey = memberKey

// voiceKey addresses a voice state within a guild.
type voiceKey = memberKey

const fnvPrime = 1099511628211

func combineHash(a, b uint64) uint64 {
	h := uint64(14695981039346656037)
	h = (h ^ a) * fnvPrime
	h = (h ^ b) * fnvPrime

	return h
}
