package cache

import (
	"time"

	"github.com/relaywire/relay-go/model"
)

// Permissions is a handle onto one cache's permission-calculation
// operations, grounded line-for-line on
// twilight-cache-inmemory/src/permission.rs's InMemoryCachePermissions:
// owner short-circuit, role fold from @everyone, ADMINISTRATOR
// short-circuit, channel overwrite order, and toggleable timeout masking.
type Permissions struct {
	cache                            *Cache
	checkMemberCommunicationDisabled bool
}

// Permissions returns a permission-calculation handle over this cache.
// Timeout masking is enabled by default; call
// CheckMemberCommunicationDisabled(false) to disable it.
func (c *Cache) Permissions() Permissions {
	return Permissions{cache: c, checkMemberCommunicationDisabled: true}
}

// CheckMemberCommunicationDisabled toggles timeout masking. Masking
// compares the member's CommunicationDisabledUntil against time.Now().
func (p Permissions) CheckMemberCommunicationDisabled(enabled bool) Permissions {
	p.checkMemberCommunicationDisabled = enabled

	return p
}

// memberRoles is a member's resolved role permissions plus the guild's
// @everyone role permissions, step 2 of the algorithm.
type memberRoles struct {
	assigned []roleGrant
	everyone model.Permissions
}

type roleGrant struct {
	id          model.RoleID
	permissions model.Permissions
}

func (p Permissions) isOwner(userID model.UserID, guildID model.GuildID) bool {
	guild, ok := p.cache.Guild(guildID)

	return ok && guild.OwnerID == userID
}

func (p Permissions) memberRolesOf(guildID model.GuildID, member model.Member) (memberRoles, error) {
	assigned := make([]roleGrant, 0, len(member.Roles))

	for _, roleID := range member.Roles {
		role, ok := p.cache.Role(roleID)
		if !ok {
			return memberRoles{}, errRoleUnavailable(roleID)
		}

		assigned = append(assigned, roleGrant{id: roleID, permissions: role.Permissions})
	}

	everyoneID := model.EveryoneRoleID(guildID)

	everyoneRole, ok := p.cache.Role(everyoneID)
	if !ok {
		return memberRoles{}, errRoleUnavailable(everyoneID)
	}

	return memberRoles{assigned: assigned, everyone: everyoneRole.Permissions}, nil
}

// Root calculates a member's guild-scope permissions.
func (p Permissions) Root(userID model.UserID, guildID model.GuildID) (model.Permissions, error) {
	if p.isOwner(userID, guildID) {
		return model.PermissionsAll, nil
	}

	member, ok := p.cache.Member(guildID, userID)
	if !ok {
		return 0, errMemberUnavailable(guildID, userID)
	}

	roles, err := p.memberRolesOf(guildID, member)
	if err != nil {
		return 0, err
	}

	base := roles.everyone
	for _, grant := range roles.assigned {
		base = base.Union(grant.permissions)
	}

	if base.Has(model.PermissionAdministrator) {
		return model.PermissionsAll, nil
	}

	return p.maskTimeout(member, base), nil
}

// InChannel calculates a member's effective permissions in a guild
// channel, honoring per-channel overwrites and thread inheritance.
func (p Permissions) InChannel(userID model.UserID, channelID model.ChannelID) (model.Permissions, error) {
	channel, ok := p.cache.Channel(channelID)
	if !ok {
		return 0, errChannelUnavailable(channelID)
	}

	if !channel.IsGuildOwned() {
		return 0, errChannelNotInGuild(channelID)
	}

	guildID := channel.GuildID

	if p.isOwner(userID, guildID) {
		return model.PermissionsAll, nil
	}

	member, ok := p.cache.Member(guildID, userID)
	if !ok {
		return 0, errMemberUnavailable(guildID, userID)
	}

	roles, err := p.memberRolesOf(guildID, member)
	if err != nil {
		return 0, err
	}

	overwrites, err := p.resolveOverwrites(channel)
	if err != nil {
		return 0, err
	}

	base := roles.everyone
	for _, grant := range roles.assigned {
		base = base.Union(grant.permissions)
	}

	permissions := applyOverwrites(base, guildID, userID, roles, overwrites)

	return p.maskTimeout(member, permissions), nil
}

// resolveOverwrites returns the overwrites to apply for a channel: its own
// if it is not a thread, or its parent's overwrites concatenated with its
// own (parent first) if it is.
func (p Permissions) resolveOverwrites(channel model.Channel) ([]model.PermissionOverwrite, error) {
	if !channel.Type.IsThread() {
		return channel.PermissionOverwrites, nil
	}

	if channel.ParentID == nil {
		return nil, errParentChannelNotPresent(channel.ID)
	}

	parent, ok := p.cache.Channel(*channel.ParentID)
	if !ok {
		return nil, errChannelUnavailable(*channel.ParentID)
	}

	if !parent.IsGuildOwned() {
		return nil, errChannelNotInGuild(parent.ID)
	}

	combined := make([]model.PermissionOverwrite, 0, len(parent.PermissionOverwrites)+len(channel.PermissionOverwrites))
	combined = append(combined, parent.PermissionOverwrites...)
	combined = append(combined, channel.PermissionOverwrites...)

	return combined, nil
}

// applyOverwrites implements step 4's overwrite algorithm: @everyone
// deny/allow, then the union of the member's role overwrites deny/allow,
// then the member-specific overwrite, with an ADMINISTRATOR short-circuit
// checked after every stage.
func applyOverwrites(base model.Permissions, guildID model.GuildID, userID model.UserID, roles memberRoles, overwrites []model.PermissionOverwrite) model.Permissions {
	permissions := base

	everyoneID := model.OverwriteTargetID(model.EveryoneRoleID(guildID))

	for _, ow := range overwrites {
		if ow.Type == model.PermissionOverwriteRole && ow.ID == everyoneID {
			permissions = permissions.Remove(ow.Deny).Union(ow.Allow)
		}
	}

	if permissions.Has(model.PermissionAdministrator) {
		return model.PermissionsAll
	}

	var roleDeny, roleAllow model.Permissions

	for _, ow := range overwrites {
		if ow.Type != model.PermissionOverwriteRole {
			continue
		}

		if ow.ID == everyoneID {
			continue
		}

		for _, grant := range roles.assigned {
			if model.OverwriteTargetID(grant.id) == ow.ID {
				roleDeny = roleDeny.Union(ow.Deny)
				roleAllow = roleAllow.Union(ow.Allow)

				break
			}
		}
	}

	permissions = permissions.Remove(roleDeny).Union(roleAllow)

	if permissions.Has(model.PermissionAdministrator) {
		return model.PermissionsAll
	}

	for _, ow := range overwrites {
		if ow.Type != model.PermissionOverwriteMember {
			continue
		}

		if ow.ID != model.OverwriteTargetID(userID) {
			continue
		}

		permissions = permissions.Remove(ow.Deny).Union(ow.Allow)
	}

	if permissions.Has(model.PermissionAdministrator) {
		return model.PermissionsAll
	}

	return permissions
}

// maskTimeout applies step 5: if the member is currently timed out and
// does not hold ADMINISTRATOR, intersect with the read-only mask.
func (p Permissions) maskTimeout(member model.Member, permissions model.Permissions) model.Permissions {
	if !p.checkMemberCommunicationDisabled {
		return permissions
	}

	if permissions.Has(model.PermissionAdministrator) {
		return permissions
	}

	if !member.IsTimedOut(time.Now()) {
		return permissions
	}

	return permissions.Intersect(model.MemberCommunicationDisabledAllowlist)
}
