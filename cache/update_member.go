package cache

import "github.com/relaywire/relay-go/model"

// updateMemberUpsert inserts or replaces a member, records it in the
// guild's reverse index, and reference-counts the embedded user.
func (c *Cache) updateMemberUpsert(m model.Member) {
	if c.enabled(model.ResourceMember) {
		c.members.Set(memberKey{GuildID: m.GuildID, UserID: memberUserID(m)}, m)
		setAdd(c.guildMembers, m.GuildID, memberUserID(m))
	}

	if m.User != nil {
		c.cacheUser(m.GuildID, *m.User)
	}
}

// updateMemberRemove removes a member, drops the guild from the user's
// reference set, and evicts the user entirely once no guild references it.
func (c *Cache) updateMemberRemove(e model.MemberRemove) {
	if c.enabled(model.ResourceMember) {
		c.members.Delete(memberKey{GuildID: e.GuildID, UserID: e.User.ID})
		setRemove(c.guildMembers, e.GuildID, e.User.ID)
	}

	c.uncacheUserFromGuild(e.GuildID, e.User.ID)
}

// updateMemberChunk applies a RequestGuildMembers response: every member
// in the chunk is upserted exactly as MemberAdd would.
func (c *Cache) updateMemberChunk(e model.MemberChunk) {
	for _, m := range e.Members {
		m.GuildID = e.GuildID
		c.updateMemberUpsert(m)
	}
}

// memberUserID extracts the user ID a member record is keyed by. Most
// dispatch paths populate Member.User; GuildCreate's nested members always
// do, per the platform contract.
func memberUserID(m model.Member) model.UserID {
	if m.User != nil {
		return m.User.ID
	}

	return model.UserID(0)
}
