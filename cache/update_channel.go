package cache

import (
	"time"

	"github.com/relaywire/relay-go/model"
)

// updateChannelUpsert upserts a channel into the kind-specific table and,
// if it belongs to a guild, records it in that guild's reverse index.
func (c *Cache) updateChannelUpsert(ch model.Channel) {
	if !c.enabled(model.ResourceChannel) {
		return
	}

	c.channels.Set(ch.ID, ch)

	if ch.IsGuildOwned() {
		setAdd(c.guildChannels, ch.GuildID, ch.ID)
	}
}

// updateChannelDelete removes a channel from every table. It does not
// cascade to messages cached for that channel — a consumer may still hold
// message references.
func (c *Cache) updateChannelDelete(ch model.Channel) {
	if !c.enabled(model.ResourceChannel) {
		return
	}

	c.channels.Delete(ch.ID)

	if ch.IsGuildOwned() {
		setRemove(c.guildChannels, ch.GuildID, ch.ID)
	}
}

// updateThreadDelete mirrors updateChannelDelete for the reduced
// ThreadDelete payload, which carries identifying fields only.
func (c *Cache) updateThreadDelete(e model.ThreadDelete) {
	if !c.enabled(model.ResourceChannel) {
		return
	}

	c.channels.Delete(e.ID)

	if !e.GuildID.IsZero() {
		setRemove(c.guildChannels, e.GuildID, e.ID)
	}
}

// updateChannelPins mutates only last_pin_timestamp on the referenced
// channel, regardless of whether it is a guild channel, private channel,
// or group DM.
func (c *Cache) updateChannelPins(e model.ChannelPinsUpdate) {
	if !c.enabled(model.ResourceChannel) {
		return
	}

	c.channels.Mutate(e.ChannelID, func(current model.Channel, existed bool) model.Channel {
		if !existed {
			return current
		}

		if e.LastPinTimestamp == nil {
			current.LastPinTimestamp = nil

			return current
		}

		if ts, err := time.Parse(time.RFC3339, *e.LastPinTimestamp); err == nil {
			current.LastPinTimestamp = &ts
		}

		return current
	})
}
