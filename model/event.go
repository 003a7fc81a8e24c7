package model

// EventType names a dispatch event variant, mirroring the platform's `t`
// field on opcode-0 frames, plus a handful of shard-local transport
// pseudo-event types.
type EventType string

const (
	EventReady   EventType = "READY"
	EventResumed EventType = "RESUMED"

	EventGuildCreate      EventType = "GUILD_CREATE"
	EventGuildUpdate      EventType = "GUILD_UPDATE"
	EventGuildDelete      EventType = "GUILD_DELETE"
	EventUnavailableGuild EventType = "UNAVAILABLE_GUILD"

	EventChannelCreate     EventType = "CHANNEL_CREATE"
	EventChannelUpdate     EventType = "CHANNEL_UPDATE"
	EventChannelDelete     EventType = "CHANNEL_DELETE"
	EventChannelPinsUpdate EventType = "CHANNEL_PINS_UPDATE"
	EventThreadCreate      EventType = "THREAD_CREATE"
	EventThreadUpdate      EventType = "THREAD_UPDATE"
	EventThreadDelete      EventType = "THREAD_DELETE"

	EventGuildMemberAdd    EventType = "GUILD_MEMBER_ADD"
	EventGuildMemberUpdate EventType = "GUILD_MEMBER_UPDATE"
	EventGuildMemberRemove EventType = "GUILD_MEMBER_REMOVE"
	EventGuildMembersChunk EventType = "GUILD_MEMBERS_CHUNK"

	EventGuildRoleCreate EventType = "GUILD_ROLE_CREATE"
	EventGuildRoleUpdate EventType = "GUILD_ROLE_UPDATE"
	EventGuildRoleDelete EventType = "GUILD_ROLE_DELETE"

	EventGuildEmojisUpdate   EventType = "GUILD_EMOJIS_UPDATE"
	EventGuildStickersUpdate EventType = "GUILD_STICKERS_UPDATE"

	EventGuildIntegrationsUpdate EventType = "GUILD_INTEGRATIONS_UPDATE"
	EventIntegrationCreate       EventType = "INTEGRATION_CREATE"
	EventIntegrationUpdate       EventType = "INTEGRATION_UPDATE"
	EventIntegrationDelete       EventType = "INTEGRATION_DELETE"

	EventStageInstanceCreate EventType = "STAGE_INSTANCE_CREATE"
	EventStageInstanceUpdate EventType = "STAGE_INSTANCE_UPDATE"
	EventStageInstanceDelete EventType = "STAGE_INSTANCE_DELETE"

	EventMessageCreate     EventType = "MESSAGE_CREATE"
	EventMessageUpdate     EventType = "MESSAGE_UPDATE"
	EventMessageDelete     EventType = "MESSAGE_DELETE"
	EventMessageDeleteBulk EventType = "MESSAGE_DELETE_BULK"

	EventMessageReactionAdd         EventType = "MESSAGE_REACTION_ADD"
	EventMessageReactionRemove      EventType = "MESSAGE_REACTION_REMOVE"
	EventMessageReactionRemoveAll   EventType = "MESSAGE_REACTION_REMOVE_ALL"
	EventMessageReactionRemoveEmoji EventType = "MESSAGE_REACTION_REMOVE_EMOJI"

	EventPresenceUpdate EventType = "PRESENCE_UPDATE"
	EventTypingStart    EventType = "TYPING_START"

	EventVoiceStateUpdate EventType = "VOICE_STATE_UPDATE"
	EventVoiceServerUpdate EventType = "VOICE_SERVER_UPDATE"

	EventInteractionCreate EventType = "INTERACTION_CREATE"
	EventWebhooksUpdate    EventType = "WEBHOOKS_UPDATE"

	// Shard-local transport pseudo-events: never sent by the platform.
	// Nothing in the gateway package constructs them; Shard.NextEvent
	// yields only decoded dispatch events.
	EventShardConnected    EventType = "SHARD_CONNECTED"
	EventShardDisconnected EventType = "SHARD_DISCONNECTED"
	EventShardReconnecting EventType = "SHARD_RECONNECTING"
	EventShardResuming     EventType = "SHARD_RESUMING"
)

// Event is the closed sum type of everything a Shard can yield from
// next_event. Events with a natural guild/channel/message scope also
// implement GuildScoped, ChannelScoped or MessageScoped, which Standby
// uses to decide whether to consult a scoped bag.
type Event interface {
	Type() EventType
}

// GuildScoped is implemented by events carrying a guild ID, used by
// Standby's guild-keyed bag.
type GuildScoped interface {
	EventGuildID() GuildID
}

// ChannelScoped is implemented by events carrying a channel ID.
type ChannelScoped interface {
	EventChannelID() ChannelID
}

// MessageScoped is implemented by events carrying a message ID.
type MessageScoped interface {
	EventMessageID() MessageID
}
