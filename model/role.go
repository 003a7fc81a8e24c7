package model

// Role is a guild-scoped permission grant, ordered by Position within the
// role hierarchy. The guild's own ID doubles as the @everyone role's ID
// (see EveryoneRoleID).
type Role struct {
	ID          RoleID      `json:"id"`
	GuildID     GuildID     `json:"guild_id"`
	Name        string      `json:"name"`
	Color       int         `json:"color"`
	Hoist       bool        `json:"hoist"`
	Icon        string      `json:"icon,omitempty"`
	Position    int         `json:"position"`
	Permissions Permissions `json:"permissions"`
	Managed     bool        `json:"managed"`
	Mentionable bool        `json:"mentionable"`
}
