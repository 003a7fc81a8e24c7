package model

// Emoji is a guild-owned custom emoji.
type Emoji struct {
	ID            EmojiID   `json:"id"`
	GuildID       GuildID   `json:"guild_id"`
	Name          string    `json:"name"`
	Roles         []RoleID  `json:"roles,omitempty"`
	User          *User     `json:"user,omitempty"`
	RequireColons bool      `json:"require_colons"`
	Managed       bool      `json:"managed"`
	Animated      bool      `json:"animated"`
	Available     bool      `json:"available"`
}

// Sticker is a guild-owned sticker.
type Sticker struct {
	ID          StickerID     `json:"id"`
	PackID      ApplicationID `json:"pack_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Tags        string        `json:"tags"`
	Type        StickerType   `json:"type"`
	FormatType  int           `json:"format_type"`
	Available   bool          `json:"available"`
	GuildID     GuildID       `json:"guild_id,omitempty"`
	User        *User         `json:"user,omitempty"`
	SortValue   int           `json:"sort_value,omitempty"`
}

// StickerType distinguishes standard (platform-provided) from guild
// (custom) stickers.
type StickerType int

const (
	StickerTypeStandard StickerType = 1
	StickerTypeGuild    StickerType = 2
)

// Integration is a guild-linked third-party integration (e.g. a streaming
// service subscription sync).
type Integration struct {
	ID                IntegrationID `json:"id"`
	GuildID           GuildID       `json:"guild_id"`
	Name              string        `json:"name"`
	Type              string        `json:"type"`
	Enabled           bool          `json:"enabled"`
	Syncing           bool          `json:"syncing,omitempty"`
	RoleID            RoleID        `json:"role_id,omitempty"`
	EnableEmoticons   bool          `json:"enable_emoticons,omitempty"`
	ExpireBehavior    int           `json:"expire_behavior,omitempty"`
	ExpireGracePeriod int           `json:"expire_grace_period,omitempty"`
	User              *User         `json:"user,omitempty"`
	Account           struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"account"`
}

// StageInstance is the topic metadata of a live stage channel.
type StageInstance struct {
	ID                   StageID   `json:"id"`
	GuildID              GuildID   `json:"guild_id"`
	ChannelID            ChannelID `json:"channel_id"`
	Topic                string    `json:"topic"`
	PrivacyLevel         int       `json:"privacy_level"`
	DiscoverableDisabled bool      `json:"discoverable_disabled"`
	GuildScheduledEventID *GuildID `json:"guild_scheduled_event_id,omitempty"`
}
