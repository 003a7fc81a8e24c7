package model

import "time"

// Member is a user's guild-scoped membership record: roles, nickname, and
// moderation state (timeout). The embedded User may be nil on partial
// updates (e.g. a MessageCreate's author-as-member projection).
type Member struct {
	GuildID                    GuildID    `json:"guild_id"`
	User                       *User      `json:"user,omitempty"`
	Nick                       string     `json:"nick,omitempty"`
	Avatar                     string     `json:"avatar,omitempty"`
	Roles                      []RoleID   `json:"roles"`
	JoinedAt                   time.Time  `json:"joined_at"`
	PremiumSince               *time.Time `json:"premium_since,omitempty"`
	Deaf                       bool       `json:"deaf"`
	Mute                       bool       `json:"mute"`
	Pending                    bool       `json:"pending,omitempty"`
	Permissions                *Permissions `json:"permissions,omitempty"`
	CommunicationDisabledUntil *time.Time `json:"communication_disabled_until,omitempty"`
}

// IsTimedOut reports whether the member's communication is currently
// disabled relative to now.
func (m *Member) IsTimedOut(now time.Time) bool {
	return m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}

// Presence is a user's guild-scoped online status and activity list.
type Presence struct {
	GuildID    GuildID      `json:"guild_id"`
	UserID     UserID       `json:"user_id"`
	Status     string       `json:"status"`
	Activities []Activity   `json:"activities,omitempty"`
	ClientStatus ClientStatus `json:"client_status"`
}

// Activity is a single entry in a presence's activity list (playing,
// streaming, listening, custom status, ...).
type Activity struct {
	Name  string `json:"name"`
	Type  int    `json:"type"`
	URL   string `json:"url,omitempty"`
	State string `json:"state,omitempty"`
}

// ClientStatus reports per-platform presence (desktop/mobile/web).
type ClientStatus struct {
	Desktop string `json:"desktop,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Web     string `json:"web,omitempty"`
}

// VoiceState is a user's connection state to a guild voice or stage
// channel.
type VoiceState struct {
	GuildID                 GuildID    `json:"guild_id"`
	ChannelID               *ChannelID `json:"channel_id"`
	UserID                  UserID     `json:"user_id"`
	Member                  *Member    `json:"member,omitempty"`
	SessionID               string     `json:"session_id"`
	Deaf                    bool       `json:"deaf"`
	Mute                    bool       `json:"mute"`
	SelfDeaf                bool       `json:"self_deaf"`
	SelfMute                bool       `json:"self_mute"`
	SelfStream              bool       `json:"self_stream,omitempty"`
	SelfVideo               bool       `json:"self_video"`
	Suppress                bool       `json:"suppress"`
	RequestToSpeakTimestamp *time.Time `json:"request_to_speak_timestamp,omitempty"`
}
