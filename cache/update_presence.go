package cache

import "github.com/relaywire/relay-go/model"

// updatePresence upserts a presence keyed by (guild, user).
func (c *Cache) updatePresence(e model.PresenceUpdate) {
	if !c.enabled(model.ResourcePresence) {
		return
	}

	c.presences.Set(presenceKey{GuildID: e.GuildID, UserID: e.UserID}, e.Presence)
}
