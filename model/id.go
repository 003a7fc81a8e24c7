package model

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// Marker types tag an ID with the kind of entity it refers to. They carry no
// data; their only purpose is to make GuildID and ChannelID distinct types so
// the compiler rejects passing one where the other is expected.
type (
	GuildMarker       struct{}
	ChannelMarker     struct{}
	UserMarker        struct{}
	RoleMarker        struct{}
	MessageMarker     struct{}
	EmojiMarker       struct{}
	IntegrationMarker struct{}
	StickerMarker     struct{}
	StageMarker       struct{}
	ApplicationMarker struct{}
	WebhookMarker       struct{}
	AttachmentMarker    struct{}
	InteractionMarker   struct{}
)

// ID is a tagged 64-bit platform identifier. The marker type parameter is a
// compile-time tag only: ID[GuildMarker] and ID[ChannelMarker] are distinct
// types even though both are backed by uint64, so swapping a guild ID into a
// channel ID slot is a type error rather than a runtime bug.
type ID[Marker any] uint64

// NewID constructs a tagged ID from a raw platform snowflake.
func NewID[Marker any](raw uint64) ID[Marker] {
	return ID[Marker](raw)
}

// IsZero reports whether this ID was never assigned.
func (id ID[Marker]) IsZero() bool {
	return id == 0
}

func (id ID[Marker]) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Hash satisfies cache.Hashable so IDs can key a sharded map directly.
func (id ID[Marker]) Hash() uint64 {
	return uint64(id)
}

// MarshalJSON encodes the ID as a JSON string, matching the wire format of
// the platform (snowflakes exceed the safe integer range of a JS float).
func (id ID[Marker]) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(id.String())
}

// UnmarshalJSON accepts both string and bare-integer encodings, since some
// dispatch payloads embed raw numeric IDs.
func (id *ID[Marker]) UnmarshalJSON(data []byte) error {
	var s string
	if err := jsoniter.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}

		*id = ID[Marker](v)

		return nil
	}

	var v uint64
	if err := jsoniter.Unmarshal(data, &v); err != nil {
		return err
	}

	*id = ID[Marker](v)

	return nil
}

// Concrete ID aliases used throughout the model, cache, gateway and standby
// packages. These mirror twilight-model's Id<GuildMarker> family.
type (
	GuildID       = ID[GuildMarker]
	ChannelID     = ID[ChannelMarker]
	UserID        = ID[UserMarker]
	RoleID        = ID[RoleMarker]
	MessageID     = ID[MessageMarker]
	EmojiID       = ID[EmojiMarker]
	IntegrationID = ID[IntegrationMarker]
	StickerID     = ID[StickerMarker]
	StageID       = ID[StageMarker]
	ApplicationID = ID[ApplicationMarker]
	WebhookID     = ID[WebhookMarker]
	AttachmentID  = ID[AttachmentMarker]
	InteractionID = ID[InteractionMarker]
)

// EveryoneRoleID returns the @everyone role ID for a guild: the platform
// reuses the guild's own ID as the role ID of its default role.
func EveryoneRoleID(guild GuildID) RoleID {
	return RoleID(guild)
}
