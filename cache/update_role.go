package cache

import "github.com/relaywire/relay-go/model"

// updateRoleUpsert upserts a guild-scoped role.
func (c *Cache) updateRoleUpsert(guildID model.GuildID, role model.Role) {
	if !c.enabled(model.ResourceRole) {
		return
	}

	role.GuildID = guildID
	c.roles.Set(role.ID, role)
	setAdd(c.guildRoles, guildID, role.ID)
}

// updateRoleDelete removes a role from both the role table and its guild's
// role set.
func (c *Cache) updateRoleDelete(e model.RoleDelete) {
	if !c.enabled(model.ResourceRole) {
		return
	}

	c.roles.Delete(e.RoleID)
	setRemove(c.guildRoles, e.GuildID, e.RoleID)
}
