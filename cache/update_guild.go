package cache

import "github.com/relaywire/relay-go/model"

// updateReady caches the current user and, for each guild entry, records
// that entry's own Unavailable flag in the unavailable-guild table.
func (c *Cache) updateReady(e model.Ready) {
	if c.enabled(model.ResourceUserCurrent) {
		c.currentUserMu.Lock()
		user := e.User
		c.currentUser = &user
		c.currentUserMu.Unlock()
	}

	if !c.enabled(model.ResourceGuild) {
		return
	}

	for _, g := range e.Guilds {
		c.unavailable.Set(g.ID, g.Unavailable)
	}
}

// updateGuildCreate populates a guild's own fields and fans every nested
// collection out into its dedicated store.
func (c *Cache) updateGuildCreate(e model.GuildCreate) {
	g := e.Guild

	channels, threads := g.Channels, g.Threads
	roles, emojis, stickers := g.Roles, g.Emojis, g.Stickers
	members, presences, voiceStates := g.Members, g.Presences, g.VoiceStates
	stages := g.StageInstances

	g.ApplyDefaults()
	g.Channels, g.Threads = nil, nil
	g.Roles, g.Emojis, g.Stickers = nil, nil, nil
	g.Members, g.Presences, g.VoiceStates = nil, nil, nil
	g.StageInstances = nil

	if c.enabled(model.ResourceGuild) {
		c.guilds.Set(g.ID, g)
		c.unavailable.Set(g.ID, false)
	}

	if c.enabled(model.ResourceChannel) {
		for _, ch := range channels {
			c.updateChannelUpsert(ch)
		}

		for _, th := range threads {
			c.updateChannelUpsert(th)
		}
	}

	if c.enabled(model.ResourceRole) {
		for _, r := range roles {
			c.updateRoleUpsert(g.ID, r)
		}
	}

	if c.enabled(model.ResourceEmoji) {
		for _, em := range emojis {
			c.updateEmojiUpsert(g.ID, em)
		}
	}

	if c.enabled(model.ResourceSticker) {
		for _, st := range stickers {
			c.updateStickerUpsert(g.ID, st)
		}
	}

	if c.enabled(model.ResourceMember) {
		for _, m := range members {
			m.GuildID = g.ID
			c.updateMemberUpsert(m)
		}
	}

	if c.enabled(model.ResourcePresence) {
		for _, p := range presences {
			p.GuildID = g.ID
			c.presences.Set(presenceKey{GuildID: g.ID, UserID: p.UserID}, p)
		}
	}

	if c.enabled(model.ResourceVoiceState) {
		for _, vs := range voiceStates {
			vs.GuildID = g.ID
			c.updateVoiceStateValue(vs)
		}
	}

	if c.enabled(model.ResourceStageInstance) {
		for _, si := range stages {
			si.GuildID = g.ID
			c.updateStageInstanceUpsert(si)
		}
	}
}

// updateGuildUpdate merges the mutable fields of a guild, applying the
// platform's implicit defaults (max_presences = 25000 when unset).
func (c *Cache) updateGuildUpdate(e model.GuildUpdate) {
	if !c.enabled(model.ResourceGuild) {
		return
	}

	incoming := e.Guild
	incoming.ApplyDefaults()

	c.guilds.Mutate(incoming.ID, func(current model.Guild, existed bool) model.Guild {
		if !existed {
			return incoming
		}

		// GuildUpdate never carries nested collections; preserve whatever
		// the cache already fanned out.
		incoming.Channels, incoming.Threads = current.Channels, current.Threads
		incoming.Roles, incoming.Emojis, incoming.Stickers = current.Roles, current.Emojis, current.Stickers
		incoming.Members, incoming.Presences, incoming.VoiceStates = current.Members, current.Presences, current.VoiceStates
		incoming.StageInstances = current.StageInstances

		return incoming
	})
}

// updateGuildDelete removes a guild and, for every enabled resource type,
// its owned resources via the reverse indices. An Unavailable delete
// (outage, not a real removal) only flips the unavailable flag and leaves
// every owned resource intact.
func (c *Cache) updateGuildDelete(e model.GuildDelete) {
	if e.Unavailable {
		if c.enabled(model.ResourceGuild) {
			c.unavailable.Set(e.ID, true)
		}

		return
	}

	if c.enabled(model.ResourceChannel) {
		for _, chID := range setKeys(c.guildChannels, e.ID) {
			c.channels.Delete(chID)
		}

		c.guildChannels.Delete(e.ID)
	}

	if c.enabled(model.ResourceRole) {
		for _, roleID := range setKeys(c.guildRoles, e.ID) {
			c.roles.Delete(roleID)
		}

		c.guildRoles.Delete(e.ID)
	}

	if c.enabled(model.ResourceEmoji) {
		for _, emojiID := range setKeys(c.guildEmojis, e.ID) {
			c.emojis.Delete(emojiID)
		}

		c.guildEmojis.Delete(e.ID)
	}

	if c.enabled(model.ResourceSticker) {
		for _, stickerID := range setKeys(c.guildStickers, e.ID) {
			c.stickers.Delete(stickerID)
		}

		c.guildStickers.Delete(e.ID)
	}

	if c.enabled(model.ResourceIntegration) {
		for _, integrationID := range setKeys(c.guildIntegrations, e.ID) {
			c.integrations.Delete(integrationID)
		}

		c.guildIntegrations.Delete(e.ID)
	}

	if c.enabled(model.ResourceStageInstance) {
		for _, stageID := range setKeys(c.guildStageInstances, e.ID) {
			c.stageInstances.Delete(stageID)
		}

		c.guildStageInstances.Delete(e.ID)
	}

	memberUserIDs := setKeys(c.guildMembers, e.ID)

	if c.enabled(model.ResourceMember) {
		for _, userID := range memberUserIDs {
			c.members.Delete(memberKey{GuildID: e.ID, UserID: userID})
			c.uncacheUserFromGuild(e.ID, userID)
		}

		c.guildMembers.Delete(e.ID)
	}

	if c.enabled(model.ResourcePresence) {
		for _, userID := range memberUserIDs {
			c.presences.Delete(presenceKey{GuildID: e.ID, UserID: userID})
		}
	}

	if c.enabled(model.ResourceVoiceState) {
		for _, key := range setKeys(c.guildVoiceStates, e.ID) {
			if vs, ok := c.voiceStates.Get(key); ok && vs.ChannelID != nil {
				setRemove(c.channelVoiceStates, *vs.ChannelID, key)
			}

			c.voiceStates.Delete(key)
		}

		c.guildVoiceStates.Delete(e.ID)
	}

	if c.enabled(model.ResourceGuild) {
		c.guilds.Delete(e.ID)
		c.unavailable.Delete(e.ID)
	}
}
