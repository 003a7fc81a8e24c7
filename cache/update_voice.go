package cache

import "github.com/relaywire/relay-go/model"

// updateVoiceState is the VoiceStateUpdate dispatch handler: it upserts
// the voice state, maintains the channel-level reverse index, and updates
// the embedded member if the platform attached one.
func (c *Cache) updateVoiceState(e model.VoiceStateUpdate) {
	if e.Member != nil && c.enabled(model.ResourceMember) {
		member := *e.Member
		member.GuildID = e.GuildID
		c.updateMemberUpsert(member)
	}

	if !c.enabled(model.ResourceVoiceState) {
		return
	}

	c.updateVoiceStateValue(e.VoiceState)
}

// updateVoiceStateValue applies the guild-level and channel-level index
// bookkeeping shared by VoiceStateUpdate and GuildCreate's nested
// voice_states list.
func (c *Cache) updateVoiceStateValue(vs model.VoiceState) {
	key := voiceKey{GuildID: vs.GuildID, UserID: vs.UserID}

	if previous, ok := c.voiceStates.Get(key); ok && previous.ChannelID != nil {
		setRemove(c.channelVoiceStates, *previous.ChannelID, key)
	}

	if vs.ChannelID == nil {
		c.voiceStates.Delete(key)
		setRemove(c.guildVoiceStates, vs.GuildID, key)

		return
	}

	c.voiceStates.Set(key, vs)
	setAdd(c.channelVoiceStates, *vs.ChannelID, key)
	setAdd(c.guildVoiceStates, vs.GuildID, key)
}
