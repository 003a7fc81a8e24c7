package model

import "time"

// VerificationLevel, ExplicitContentFilterLevel etc. are kept as plain ints
// rather than closed enums: the cache never branches on their meaning, only
// stores and returns them.

// Guild is a platform community: the root of the ownership graph for
// channels, roles, members, emojis, stickers, and stage instances.
type Guild struct {
	ID                          GuildID       `json:"id"`
	Name                        string        `json:"name"`
	Icon                        string        `json:"icon,omitempty"`
	Splash                      string        `json:"splash,omitempty"`
	DiscoverySplash             string        `json:"discovery_splash,omitempty"`
	OwnerID                     UserID        `json:"owner_id"`
	Permissions                 *Permissions  `json:"permissions,omitempty"`
	AFKChannelID                *ChannelID    `json:"afk_channel_id,omitempty"`
	AFKTimeout                  int           `json:"afk_timeout"`
	WidgetEnabled               bool          `json:"widget_enabled,omitempty"`
	VerificationLevel           int           `json:"verification_level"`
	DefaultMessageNotifications int           `json:"default_message_notifications"`
	ExplicitContentFilter       int           `json:"explicit_content_filter"`
	Features                    []string      `json:"features,omitempty"`
	MFALevel                   int           `json:"mfa_level"`
	ApplicationID               *ApplicationID `json:"application_id,omitempty"`
	SystemChannelID              *ChannelID    `json:"system_channel_id,omitempty"`
	SystemChannelFlags           int           `json:"system_channel_flags"`
	RulesChannelID               *ChannelID    `json:"rules_channel_id,omitempty"`
	MaxPresences                 int           `json:"max_presences"`
	MaxMembers                   int           `json:"max_members,omitempty"`
	VanityURLCode                string        `json:"vanity_url_code,omitempty"`
	Description                  string        `json:"description,omitempty"`
	Banner                       string        `json:"banner,omitempty"`
	PremiumTier                  int           `json:"premium_tier"`
	PremiumSubscriptionCount     int           `json:"premium_subscription_count,omitempty"`
	PreferredLocale               string        `json:"preferred_locale"`
	PublicUpdatesChannelID        *ChannelID    `json:"public_updates_channel_id,omitempty"`
	MaxVideoChannelUsers           int           `json:"max_video_channel_users,omitempty"`
	ApproximateMemberCount         int           `json:"approximate_member_count,omitempty"`
	ApproximatePresenceCount       int           `json:"approximate_presence_count,omitempty"`
	NSFWLevel                      int           `json:"nsfw_level"`
	PremiumProgressBarEnabled      bool          `json:"premium_progress_bar_enabled"`

	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	Large       bool       `json:"large,omitempty"`
	Unavailable bool       `json:"unavailable,omitempty"`
	MemberCount int        `json:"member_count,omitempty"`

	// Nested collections, present only on GuildCreate: the cache fans each
	// of these out into its own indexed store rather than keeping this
	// slice populated after ingestion.
	Channels       []Channel       `json:"channels,omitempty"`
	Threads        []Channel       `json:"threads,omitempty"`
	Roles          []Role          `json:"roles,omitempty"`
	Emojis         []Emoji         `json:"emojis,omitempty"`
	Stickers       []Sticker       `json:"stickers,omitempty"`
	Members        []Member        `json:"members,omitempty"`
	Presences      []Presence      `json:"presences,omitempty"`
	VoiceStates    []VoiceState    `json:"voice_states,omitempty"`
	StageInstances []StageInstance `json:"stage_instances,omitempty"`
}

// defaultMaxPresences is the value the platform implies when a GuildUpdate
// or GuildCreate omits max_presences.
const defaultMaxPresences = 25000

// ApplyDefaults fills in fields the platform omits from the wire payload
// when they hold their default value, matching GuildUpdate's wire semantics.
func (g *Guild) ApplyDefaults() {
	if g.MaxPresences == 0 {
		g.MaxPresences = defaultMaxPresences
	}
}
