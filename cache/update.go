package cache

import "github.com/relaywire/relay-go/model"

// Update applies one dispatch event to the cache. It is the single entry
// point a gateway drive loop calls for every event it receives; unhandled
// variants (Resumed, TypingStart, WebhooksUpdate, the shard-local
// pseudo-events, ...) are explicit no-ops, so the switch stays total over
// every dispatch variant. Delegates to one handler function per event
// family, one handler file per resource.
func (c *Cache) Update(event model.Event) {
	switch e := event.(type) {
	case model.Ready:
		c.updateReady(e)
	case model.GuildCreate:
		c.updateGuildCreate(e)
	case model.GuildUpdate:
		c.updateGuildUpdate(e)
	case model.GuildDelete:
		c.updateGuildDelete(e)

	case model.ChannelCreate:
		c.updateChannelUpsert(e.Channel)
	case model.ChannelUpdate:
		c.updateChannelUpsert(e.Channel)
	case model.ChannelDelete:
		c.updateChannelDelete(e.Channel)
	case model.ChannelPinsUpdate:
		c.updateChannelPins(e)
	case model.ThreadCreate:
		c.updateChannelUpsert(e.Channel)
	case model.ThreadUpdate:
		c.updateChannelUpsert(e.Channel)
	case model.ThreadDelete:
		c.updateThreadDelete(e)

	case model.MemberAdd:
		c.updateMemberUpsert(e.Member)
	case model.MemberUpdate:
		c.updateMemberUpsert(e.Member)
	case model.MemberRemove:
		c.updateMemberRemove(e)
	case model.MemberChunk:
		c.updateMemberChunk(e)

	case model.RoleCreate:
		c.updateRoleUpsert(e.GuildID, e.Role)
	case model.RoleUpdate:
		c.updateRoleUpsert(e.GuildID, e.Role)
	case model.RoleDelete:
		c.updateRoleDelete(e)

	case model.EmojisUpdate:
		c.updateEmojisReplace(e)
	case model.StickersUpdate:
		c.updateStickersReplace(e)

	case model.IntegrationCreate:
		c.updateIntegrationUpsert(e.GuildID, e.Integration)
	case model.IntegrationUpdate:
		c.updateIntegrationUpsert(e.GuildID, e.Integration)
	case model.IntegrationDelete:
		c.updateIntegrationDelete(e)

	case model.StageInstanceCreate:
		c.updateStageInstanceUpsert(e.StageInstance)
	case model.StageInstanceUpdate:
		c.updateStageInstanceUpsert(e.StageInstance)
	case model.StageInstanceDelete:
		c.updateStageInstanceDelete(e)

	case model.MessageCreate:
		c.updateMessageCreate(e)
	case model.MessageUpdate:
		c.updateMessageUpdate(e)
	case model.MessageDelete:
		c.updateMessageDelete(e)
	case model.MessageDeleteBulk:
		c.updateMessageDeleteBulk(e)

	case model.ReactionAdd:
		c.updateReactionAdd(e)
	case model.ReactionRemove:
		c.updateReactionRemove(e)
	case model.ReactionRemoveAll:
		c.updateReactionRemoveAll(e)
	case model.ReactionRemoveEmoji:
		c.updateReactionRemoveEmoji(e)

	case model.PresenceUpdate:
		c.updatePresence(e)
	case model.VoiceStateUpdate:
		c.updateVoiceState(e)

	default:
		// Resumed, TypingStart, InteractionCreate, WebhooksUpdate, and the
		// shard-local pseudo-events have no cache projection.
	}
}

// cacheUser upserts a user and records guildID in its guild-reference set,
// implementing the cache's reference-counting rule: `users[user_id] =
// (user, guild_set)`.
func (c *Cache) cacheUser(guildID model.GuildID, user model.User) {
	if !c.enabled(model.ResourceUser) {
		return
	}

	c.users.Mutate(user.ID, func(current userEntry, existed bool) userEntry {
		if !existed || current.guilds == nil {
			current.guilds = make(map[model.GuildID]struct{})
		}

		current.user = user
		current.guilds[guildID] = struct{}{}

		return current
	})
}

// uncacheUserFromGuild removes guildID from a user's reference set; if the
// set becomes empty the user is evicted entirely — this avoids unbounded
// growth while still keeping users reachable from any guild that
// references them.
func (c *Cache) uncacheUserFromGuild(guildID model.GuildID, userID model.UserID) {
	if !c.enabled(model.ResourceUser) {
		return
	}

	empty := false

	c.users.Mutate(userID, func(current userEntry, existed bool) userEntry {
		if !existed {
			return current
		}

		delete(current.guilds, guildID)
		empty = len(current.guilds) == 0

		return current
	})

	if empty {
		c.users.Delete(userID)
	}
}
