package cache

import "github.com/relaywire/relay-go/model"

func (c *Cache) channelMessageCache(channelID model.ChannelID) *channelMessages {
	cm, ok := c.messages.Get(channelID)
	if ok {
		return cm
	}

	created := newChannelMessages(c.cfg.MessageCacheSize)

	// Mutate rather than Set so a concurrent first-message race doesn't
	// discard whichever goroutine lost: the cache lazily creates the
	// per-channel store exactly once.
	c.messages.Mutate(channelID, func(current *channelMessages, existed bool) *channelMessages {
		if existed && current != nil {
			return current
		}

		return created
	})

	cm, _ = c.messages.Get(channelID)

	return cm
}

// updateMessageCreate appends to the channel's bounded message list,
// evicting the oldest entry past capacity, and caches the author (and
// partial member, if the gateway attached one) as a user/member.
func (c *Cache) updateMessageCreate(e model.MessageCreate) {
	if c.enabled(model.ResourceUser) {
		c.cacheUser(e.GuildID, e.Message.Author)
	}

	if e.Message.Member != nil && c.enabled(model.ResourceMember) {
		member := *e.Message.Member
		member.GuildID = e.GuildID
		member.User = &e.Message.Author
		c.updateMemberUpsert(member)
	}

	if !c.enabled(model.ResourceMessage) {
		return
	}

	c.channelMessageCache(e.ChannelID).insert(e.Message)
}

// updateMessageUpdate mutates only the fields present in the partial
// update, tracked via RawFields — the same "which keys were actually in
// the JSON object" problem pointer-typed fields sidestep for free,
// generalized here to arbitrary non-pointer fields with an explicit
// presence set.
func (c *Cache) updateMessageUpdate(e model.MessageUpdate) {
	if !c.enabled(model.ResourceMessage) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	cm.mutate(e.ID, func(current model.Message) model.Message {
		has := func(field string) bool {
			_, ok := e.RawFields[field]

			return ok
		}

		if has("content") {
			current.Content = e.Content
		}

		if has("embeds") {
			current.Embeds = e.Embeds
		}

		if has("attachments") {
			current.Attachments = e.Attachments
		}

		if has("mentions") {
			current.Mentions = e.Mentions
		}

		if has("mention_roles") {
			current.MentionRoles = e.MentionRoles
		}

		if has("mention_everyone") {
			current.MentionEveryone = e.MentionEveryone
		}

		if has("pinned") {
			current.Pinned = e.Pinned
		}

		if has("timestamp") {
			current.Timestamp = e.Timestamp
		}

		if has("tts") {
			current.TTS = e.TTS
		}

		if has("edited_timestamp") {
			current.EditedTimestamp = e.EditedTimestamp
		}

		return current
	})
}

func (c *Cache) updateMessageDelete(e model.MessageDelete) {
	if !c.enabled(model.ResourceMessage) {
		return
	}

	if cm, ok := c.messages.Get(e.ChannelID); ok {
		cm.remove(e.ID)
	}
}

func (c *Cache) updateMessageDeleteBulk(e model.MessageDeleteBulk) {
	if !c.enabled(model.ResourceMessage) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	for _, id := range e.IDs {
		cm.remove(id)
	}
}
