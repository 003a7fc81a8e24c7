package cache

import "github.com/relaywire/relay-go/model"

// updateReactionAdd finds (or creates) the reaction entry for an emoji on
// a message and increments its count, setting `me` if the current user's
// ID matches the reactor.
func (c *Cache) updateReactionAdd(e model.ReactionAdd) {
	if !c.enabled(model.ResourceReaction) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	currentUser, hasCurrentUser := c.CurrentUser()
	isMe := hasCurrentUser && currentUser.ID == e.UserID

	cm.mutate(e.MessageID, func(msg model.Message) model.Message {
		key := e.Emoji.Key()

		for i := range msg.Reactions {
			if msg.Reactions[i].Emoji.Key() == key {
				msg.Reactions[i].Count++

				if isMe {
					msg.Reactions[i].Me = true
				}

				return msg
			}
		}

		msg.Reactions = append(msg.Reactions, model.Reaction{
			Count: 1,
			Me:    isMe,
			Emoji: e.Emoji,
		})

		return msg
	})
}

// updateReactionRemove decrements a reaction's count, removing the entry
// entirely once it reaches zero.
func (c *Cache) updateReactionRemove(e model.ReactionRemove) {
	if !c.enabled(model.ResourceReaction) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	currentUser, hasCurrentUser := c.CurrentUser()
	isMe := hasCurrentUser && currentUser.ID == e.UserID

	cm.mutate(e.MessageID, func(msg model.Message) model.Message {
		key := e.Emoji.Key()

		for i := range msg.Reactions {
			if msg.Reactions[i].Emoji.Key() != key {
				continue
			}

			msg.Reactions[i].Count--

			if isMe {
				msg.Reactions[i].Me = false
			}

			if msg.Reactions[i].Count <= 0 {
				msg.Reactions = append(msg.Reactions[:i], msg.Reactions[i+1:]...)
			}

			break
		}

		return msg
	})
}

// updateReactionRemoveAll clears every reaction on a message.
func (c *Cache) updateReactionRemoveAll(e model.ReactionRemoveAll) {
	if !c.enabled(model.ResourceReaction) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	cm.mutate(e.MessageID, func(msg model.Message) model.Message {
		msg.Reactions = nil

		return msg
	})
}

// updateReactionRemoveEmoji removes every reaction matching one emoji from
// a message.
func (c *Cache) updateReactionRemoveEmoji(e model.ReactionRemoveEmoji) {
	if !c.enabled(model.ResourceReaction) {
		return
	}

	cm, ok := c.messages.Get(e.ChannelID)
	if !ok {
		return
	}

	cm.mutate(e.MessageID, func(msg model.Message) model.Message {
		key := e.Emoji.Key()
		kept := msg.Reactions[:0]

		for _, r := range msg.Reactions {
			if r.Emoji.Key() != key {
				kept = append(kept, r)
			}
		}

		msg.Reactions = kept

		return msg
	})
}
