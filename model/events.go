package model

import jsoniter "github.com/json-iterator/go"

// Ready is sent once per session after Identify succeeds. It is the only
// event carrying the session's resume coordinates.
type Ready struct {
	V                int               `json:"v"`
	User             User              `json:"user"`
	Guilds           []UnavailableGuild `json:"guilds"`
	SessionID        string            `json:"session_id"`
	ResumeGatewayURL string            `json:"resume_gateway_url"`
	Shard            *[2]int           `json:"shard,omitempty"`
	ApplicationID    ApplicationID     `json:"application"`
}

func (Ready) Type() EventType { return EventReady }

// UnavailableGuild is Ready's placeholder entry for a guild the shard has
// not yet received a full GuildCreate for.
type UnavailableGuild struct {
	ID          GuildID `json:"id"`
	Unavailable bool    `json:"unavailable"`
}

// Resumed confirms a successful session resumption; no payload fields.
type Resumed struct{}

func (Resumed) Type() EventType { return EventResumed }

// GuildCreate wraps a full Guild, sent on initial availability or when an
// unavailable guild becomes available again.
type GuildCreate struct{ Guild }

func (GuildCreate) Type() EventType          { return EventGuildCreate }
func (e GuildCreate) EventGuildID() GuildID { return e.ID }

// GuildUpdate wraps the mutable fields of a Guild; nested collections are
// never present.
type GuildUpdate struct{ Guild }

func (GuildUpdate) Type() EventType          { return EventGuildUpdate }
func (e GuildUpdate) EventGuildID() GuildID { return e.ID }

// GuildDelete is sent both when a bot is removed from a guild (Unavailable
// false) and when a guild outage makes it temporarily unavailable
// (Unavailable true).
type GuildDelete struct {
	ID          GuildID `json:"id"`
	Unavailable bool    `json:"unavailable"`
}

func (GuildDelete) Type() EventType          { return EventGuildDelete }
func (e GuildDelete) EventGuildID() GuildID { return e.ID }

// ChannelCreate, ChannelUpdate, ChannelDelete wrap a Channel.
type ChannelCreate struct{ Channel }
type ChannelUpdate struct{ Channel }
type ChannelDelete struct{ Channel }

func (ChannelCreate) Type() EventType            { return EventChannelCreate }
func (e ChannelCreate) EventGuildID() GuildID    { return e.GuildID }
func (e ChannelCreate) EventChannelID() ChannelID { return e.ID }

func (ChannelUpdate) Type() EventType            { return EventChannelUpdate }
func (e ChannelUpdate) EventGuildID() GuildID    { return e.GuildID }
func (e ChannelUpdate) EventChannelID() ChannelID { return e.ID }

func (ChannelDelete) Type() EventType            { return EventChannelDelete }
func (e ChannelDelete) EventGuildID() GuildID    { return e.GuildID }
func (e ChannelDelete) EventChannelID() ChannelID { return e.ID }

// ThreadCreate and ThreadUpdate reuse the Channel shape; threads are
// channels with Type in the thread range and a ParentID. ThreadDelete
// carries only identifying fields.
type ThreadCreate struct{ Channel }
type ThreadUpdate struct{ Channel }

func (ThreadCreate) Type() EventType            { return EventThreadCreate }
func (e ThreadCreate) EventGuildID() GuildID    { return e.GuildID }
func (e ThreadCreate) EventChannelID() ChannelID { return e.ID }

func (ThreadUpdate) Type() EventType            { return EventThreadUpdate }
func (e ThreadUpdate) EventGuildID() GuildID    { return e.GuildID }
func (e ThreadUpdate) EventChannelID() ChannelID { return e.ID }

// ThreadDelete carries only identifying fields, not a full Channel.
type ThreadDelete struct {
	ID       ChannelID   `json:"id"`
	GuildID  GuildID     `json:"guild_id"`
	ParentID ChannelID   `json:"parent_id"`
	Type     ChannelType `json:"type"`
}

func (ThreadDelete) Type() EventType            { return EventThreadDelete }
func (e ThreadDelete) EventGuildID() GuildID    { return e.GuildID }
func (e ThreadDelete) EventChannelID() ChannelID { return e.ID }

// ChannelPinsUpdate mutates only the referenced channel's last pin
// timestamp.
type ChannelPinsUpdate struct {
	GuildID          GuildID    `json:"guild_id,omitempty"`
	ChannelID        ChannelID  `json:"channel_id"`
	LastPinTimestamp *string    `json:"last_pin_timestamp,omitempty"`
}

func (ChannelPinsUpdate) Type() EventType            { return EventChannelPinsUpdate }
func (e ChannelPinsUpdate) EventGuildID() GuildID    { return e.GuildID }
func (e ChannelPinsUpdate) EventChannelID() ChannelID { return e.ChannelID }

// MemberAdd, MemberUpdate wrap a Member.
type MemberAdd struct{ Member }
type MemberUpdate struct{ Member }

func (MemberAdd) Type() EventType         { return EventGuildMemberAdd }
func (e MemberAdd) EventGuildID() GuildID { return e.GuildID }

func (MemberUpdate) Type() EventType         { return EventGuildMemberUpdate }
func (e MemberUpdate) EventGuildID() GuildID { return e.GuildID }

// MemberRemove is sent when a member leaves or is kicked/banned.
type MemberRemove struct {
	GuildID GuildID `json:"guild_id"`
	User    User    `json:"user"`
}

func (MemberRemove) Type() EventType         { return EventGuildMemberRemove }
func (e MemberRemove) EventGuildID() GuildID { return e.GuildID }

// MemberChunk is a batch response to RequestGuildMembers.
type MemberChunk struct {
	GuildID    GuildID  `json:"guild_id"`
	Members    []Member `json:"members"`
	ChunkIndex int      `json:"chunk_index"`
	ChunkCount int      `json:"chunk_count"`
	NotFound   []UserID `json:"not_found,omitempty"`
	Nonce      string   `json:"nonce,omitempty"`
}

func (MemberChunk) Type() EventType         { return EventGuildMembersChunk }
func (e MemberChunk) EventGuildID() GuildID { return e.GuildID }

// RoleCreate, RoleUpdate wrap a guild-scoped Role.
type RoleCreate struct {
	GuildID GuildID `json:"guild_id"`
	Role    Role    `json:"role"`
}
type RoleUpdate struct {
	GuildID GuildID `json:"guild_id"`
	Role    Role    `json:"role"`
}

func (RoleCreate) Type() EventType         { return EventGuildRoleCreate }
func (e RoleCreate) EventGuildID() GuildID { return e.GuildID }

func (RoleUpdate) Type() EventType         { return EventGuildRoleUpdate }
func (e RoleUpdate) EventGuildID() GuildID { return e.GuildID }

// RoleDelete removes a role from its guild.
type RoleDelete struct {
	GuildID GuildID `json:"guild_id"`
	RoleID  RoleID  `json:"role_id"`
}

func (RoleDelete) Type() EventType         { return EventGuildRoleDelete }
func (e RoleDelete) EventGuildID() GuildID { return e.GuildID }

// EmojisUpdate replaces a guild's entire emoji list.
type EmojisUpdate struct {
	GuildID GuildID `json:"guild_id"`
	Emojis  []Emoji `json:"emojis"`
}

func (EmojisUpdate) Type() EventType         { return EventGuildEmojisUpdate }
func (e EmojisUpdate) EventGuildID() GuildID { return e.GuildID }

// StickersUpdate replaces a guild's entire sticker list.
type StickersUpdate struct {
	GuildID  GuildID   `json:"guild_id"`
	Stickers []Sticker `json:"stickers"`
}

func (StickersUpdate) Type() EventType         { return EventGuildStickersUpdate }
func (e StickersUpdate) EventGuildID() GuildID { return e.GuildID }

// IntegrationCreate, IntegrationUpdate wrap an Integration.
type IntegrationCreate struct {
	GuildID     GuildID `json:"guild_id"`
	Integration Integration
}
type IntegrationUpdate struct {
	GuildID     GuildID `json:"guild_id"`
	Integration Integration
}

func (IntegrationCreate) Type() EventType         { return EventIntegrationCreate }
func (e IntegrationCreate) EventGuildID() GuildID { return e.GuildID }

func (IntegrationUpdate) Type() EventType         { return EventIntegrationUpdate }
func (e IntegrationUpdate) EventGuildID() GuildID { return e.GuildID }

// IntegrationDelete removes an integration from its guild.
type IntegrationDelete struct {
	GuildID       GuildID       `json:"guild_id"`
	ID            IntegrationID `json:"id"`
	ApplicationID ApplicationID `json:"application_id,omitempty"`
}

func (IntegrationDelete) Type() EventType         { return EventIntegrationDelete }
func (e IntegrationDelete) EventGuildID() GuildID { return e.GuildID }

// StageInstanceCreate, StageInstanceUpdate wrap a StageInstance.
type StageInstanceCreate struct{ StageInstance }
type StageInstanceUpdate struct{ StageInstance }
type StageInstanceDelete struct{ StageInstance }

func (StageInstanceCreate) Type() EventType         { return EventStageInstanceCreate }
func (e StageInstanceCreate) EventGuildID() GuildID { return e.GuildID }

func (StageInstanceUpdate) Type() EventType         { return EventStageInstanceUpdate }
func (e StageInstanceUpdate) EventGuildID() GuildID { return e.GuildID }

func (StageInstanceDelete) Type() EventType         { return EventStageInstanceDelete }
func (e StageInstanceDelete) EventGuildID() GuildID { return e.GuildID }

// MessageCreate wraps a newly sent Message.
type MessageCreate struct{ Message }

func (MessageCreate) Type() EventType              { return EventMessageCreate }
func (e MessageCreate) EventGuildID() GuildID      { return e.GuildID }
func (e MessageCreate) EventChannelID() ChannelID  { return e.ChannelID }
func (e MessageCreate) EventMessageID() MessageID  { return e.ID }

// MessageUpdate carries only the fields present in the partial edit; zero
// values must not be mistaken for an intentional clear (see
// cache.updateMessageUpdate, which tracks presence separately via RawFields).
type MessageUpdate struct {
	Message
	RawFields map[string]struct{} `json:"-"`
}

// UnmarshalJSON decodes the partial message and additionally records which
// top-level keys were present in the payload, so cache.updateMessageUpdate
// can distinguish an absent field from one explicitly cleared to its zero
// value.
func (e *MessageUpdate) UnmarshalJSON(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}

	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := make(map[string]struct{}, len(raw))
	for k := range raw {
		fields[k] = struct{}{}
	}

	e.Message = msg
	e.RawFields = fields

	return nil
}

func (MessageUpdate) Type() EventType              { return EventMessageUpdate }
func (e MessageUpdate) EventGuildID() GuildID      { return e.GuildID }
func (e MessageUpdate) EventChannelID() ChannelID  { return e.ChannelID }
func (e MessageUpdate) EventMessageID() MessageID  { return e.ID }

// MessageDelete removes a single message.
type MessageDelete struct {
	ID        MessageID `json:"id"`
	ChannelID ChannelID `json:"channel_id"`
	GuildID   GuildID   `json:"guild_id,omitempty"`
}

func (MessageDelete) Type() EventType              { return EventMessageDelete }
func (e MessageDelete) EventGuildID() GuildID      { return e.GuildID }
func (e MessageDelete) EventChannelID() ChannelID  { return e.ChannelID }
func (e MessageDelete) EventMessageID() MessageID  { return e.ID }

// MessageDeleteBulk removes many messages from one channel at once.
type MessageDeleteBulk struct {
	IDs       []MessageID `json:"ids"`
	ChannelID ChannelID   `json:"channel_id"`
	GuildID   GuildID     `json:"guild_id,omitempty"`
}

func (MessageDeleteBulk) Type() EventType             { return EventMessageDeleteBulk }
func (e MessageDeleteBulk) EventGuildID() GuildID     { return e.GuildID }
func (e MessageDeleteBulk) EventChannelID() ChannelID { return e.ChannelID }

// ReactionAdd and ReactionRemove identify one user's reaction to one
// message.
type ReactionAdd struct {
	UserID    UserID        `json:"user_id"`
	ChannelID ChannelID     `json:"channel_id"`
	MessageID MessageID     `json:"message_id"`
	GuildID   GuildID       `json:"guild_id,omitempty"`
	Member    *Member       `json:"member,omitempty"`
	Emoji     ReactionEmoji `json:"emoji"`
}
type ReactionRemove struct {
	UserID    UserID        `json:"user_id"`
	ChannelID ChannelID     `json:"channel_id"`
	MessageID MessageID     `json:"message_id"`
	GuildID   GuildID       `json:"guild_id,omitempty"`
	Emoji     ReactionEmoji `json:"emoji"`
}

func (ReactionAdd) Type() EventType              { return EventMessageReactionAdd }
func (e ReactionAdd) EventGuildID() GuildID      { return e.GuildID }
func (e ReactionAdd) EventChannelID() ChannelID  { return e.ChannelID }
func (e ReactionAdd) EventMessageID() MessageID  { return e.MessageID }

func (ReactionRemove) Type() EventType              { return EventMessageReactionRemove }
func (e ReactionRemove) EventGuildID() GuildID      { return e.GuildID }
func (e ReactionRemove) EventChannelID() ChannelID  { return e.ChannelID }
func (e ReactionRemove) EventMessageID() MessageID  { return e.MessageID }

// ReactionRemoveAll clears every reaction on a message.
type ReactionRemoveAll struct {
	ChannelID ChannelID `json:"channel_id"`
	MessageID MessageID `json:"message_id"`
	GuildID   GuildID   `json:"guild_id,omitempty"`
}

func (ReactionRemoveAll) Type() EventType             { return EventMessageReactionRemoveAll }
func (e ReactionRemoveAll) EventGuildID() GuildID     { return e.GuildID }
func (e ReactionRemoveAll) EventChannelID() ChannelID { return e.ChannelID }
func (e ReactionRemoveAll) EventMessageID() MessageID { return e.MessageID }

// ReactionRemoveEmoji clears every reaction for a single emoji on a
// message.
type ReactionRemoveEmoji struct {
	ChannelID ChannelID     `json:"channel_id"`
	MessageID MessageID     `json:"message_id"`
	GuildID   GuildID       `json:"guild_id,omitempty"`
	Emoji     ReactionEmoji `json:"emoji"`
}

func (ReactionRemoveEmoji) Type() EventType             { return EventMessageReactionRemoveEmoji }
func (e ReactionRemoveEmoji) EventGuildID() GuildID     { return e.GuildID }
func (e ReactionRemoveEmoji) EventChannelID() ChannelID { return e.ChannelID }
func (e ReactionRemoveEmoji) EventMessageID() MessageID { return e.MessageID }

// PresenceUpdate wraps a Presence.
type PresenceUpdate struct{ Presence }

func (PresenceUpdate) Type() EventType         { return EventPresenceUpdate }
func (e PresenceUpdate) EventGuildID() GuildID { return e.GuildID }

// TypingStart is sent when a user begins typing in a channel.
type TypingStart struct {
	ChannelID ChannelID `json:"channel_id"`
	GuildID   GuildID   `json:"guild_id,omitempty"`
	UserID    UserID    `json:"user_id"`
	Timestamp int64     `json:"timestamp"`
	Member    *Member   `json:"member,omitempty"`
}

func (TypingStart) Type() EventType             { return EventTypingStart }
func (e TypingStart) EventGuildID() GuildID     { return e.GuildID }
func (e TypingStart) EventChannelID() ChannelID { return e.ChannelID }

// VoiceStateUpdate wraps a VoiceState.
type VoiceStateUpdate struct{ VoiceState }

func (VoiceStateUpdate) Type() EventType         { return EventVoiceStateUpdate }
func (e VoiceStateUpdate) EventGuildID() GuildID { return e.GuildID }

// InteractionCreate wraps an Interaction — e.g. a slash command invocation
// or a message component click. Only the shape Standby's
// wait_for_component needs is modeled; full interaction/command
// serialization is out of scope.
type InteractionCreate struct {
	ID        InteractionID `json:"id"`
	Type      int           `json:"type"`
	GuildID   GuildID       `json:"guild_id,omitempty"`
	ChannelID ChannelID     `json:"channel_id,omitempty"`
	Message   *Message      `json:"message,omitempty"`
	Member    *Member       `json:"member,omitempty"`
	User      *User         `json:"user,omitempty"`
}

const interactionTypeMessageComponent = 3

func (InteractionCreate) Type() EventType         { return EventInteractionCreate }
func (e InteractionCreate) EventGuildID() GuildID { return e.GuildID }

// IsMessageComponent reports whether this interaction originated from a
// message component (button/select menu), the variant Standby's
// wait_for_component scopes by message ID.
func (e InteractionCreate) IsMessageComponent() bool {
	return e.Type == interactionTypeMessageComponent && e.Message != nil
}

// WebhooksUpdate signals that a guild's webhooks changed.
type WebhooksUpdate struct {
	GuildID   GuildID   `json:"guild_id"`
	ChannelID ChannelID `json:"channel_id"`
}

func (WebhooksUpdate) Type() EventType             { return EventWebhooksUpdate }
func (e WebhooksUpdate) EventGuildID() GuildID     { return e.GuildID }
func (e WebhooksUpdate) EventChannelID() ChannelID { return e.ChannelID }

// Shard-local transport pseudo-events.

// ShardConnected describes a shard's socket being established.
type ShardConnected struct{ ShardID int }

func (ShardConnected) Type() EventType { return EventShardConnected }

// ShardDisconnected describes a shard's socket closing, resumable or not.
type ShardDisconnected struct {
	ShardID   int
	CloseCode *CloseCode
	Resumable bool
}

func (ShardDisconnected) Type() EventType { return EventShardDisconnected }

// ShardReconnecting describes a shard about to begin a reconnect attempt.
type ShardReconnecting struct{ ShardID int }

func (ShardReconnecting) Type() EventType { return EventShardReconnecting }

// ShardResuming describes a shard about to send Resume.
type ShardResuming struct{ ShardID int }

func (ShardResuming) Type() EventType { return EventShardResuming }
