package model

// Intents is a bitfield passed verbatim in the Identify payload, gating
// which dispatch categories the gateway will send to this shard.
type Intents uint64

const (
	IntentGuilds Intents = 1 << iota
	IntentGuildMembers
	IntentGuildModeration
	IntentGuildExpressions
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
	IntentMessageContent
	IntentGuildScheduledEvents
	_
	_
	_
	IntentAutoModerationConfiguration
	IntentAutoModerationExecution
)

// All reports whether every bit of want is also set in i.
func (i Intents) All(want Intents) bool {
	return i&want == want
}

// ResourceType is a bitmask enumerating cache-managed entity families. If a
// bit is clear, dispatch events affecting only that resource are a no-op.
type ResourceType uint32

const (
	ResourceChannel ResourceType = 1 << iota
	ResourceEmoji
	ResourceGuild
	ResourceMember
	ResourceMessage
	ResourcePresence
	ResourceReaction
	ResourceRole
	ResourceSticker
	ResourceStageInstance
	ResourceUser
	ResourceUserCurrent
	ResourceVoiceState
	ResourceIntegration
)

// ResourceTypeAll enables every cache resource family.
const ResourceTypeAll = ResourceChannel | ResourceEmoji | ResourceGuild | ResourceMember |
	ResourceMessage | ResourcePresence | ResourceReaction | ResourceRole | ResourceSticker |
	ResourceStageInstance | ResourceUser | ResourceUserCurrent | ResourceVoiceState | ResourceIntegration

// Enabled reports whether every bit of want is set in r.
func (r ResourceType) Enabled(want ResourceType) bool {
	return r&want == want
}
