package cache

import (
	"testing"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testGuildID   = model.NewID[model.GuildMarker](1)
	testOwnerID   = model.NewID[model.UserMarker](2)
	testUserID    = model.NewID[model.UserMarker](3)
	testRoleID    = model.NewID[model.RoleMarker](4)
	testChannelID = model.ChannelID(testGuildID)
)

func baseGuildCache(t *testing.T, everyonePermissions model.Permissions) *Cache {
	t.Helper()

	c := New()
	c.Update(model.GuildCreate{Guild: model.Guild{
		ID:      testGuildID,
		OwnerID: testOwnerID,
		Roles: []model.Role{
			{ID: model.EveryoneRoleID(testGuildID), GuildID: testGuildID, Permissions: everyonePermissions},
		},
	}})

	return c
}

func TestRootOwnerShortCircuits(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)

	perms, err := c.Permissions().Root(testOwnerID, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionsAll, perms)
}

func TestRootMissingMemberIsError(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)

	_, err := c.Permissions().Root(testUserID, testGuildID)
	require.Error(t, err)

	cacheErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindMemberUnavailable, cacheErr.Kind())
}

func TestRootMissingRoleIsError(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID: testGuildID,
		User:    &model.User{ID: testUserID},
		Roles:   []model.RoleID{testRoleID},
	}})

	_, err := c.Permissions().Root(testUserID, testGuildID)
	require.Error(t, err)

	cacheErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindRoleUnavailable, cacheErr.Kind())
}

func TestRootFoldsRolePermissionsFromEveryone(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel|model.PermissionCreateInstantInvite)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID: testGuildID,
		User:    &model.User{ID: testUserID},
		Roles:   []model.RoleID{testRoleID},
	}})
	c.Update(model.RoleCreate{GuildID: testGuildID, Role: model.Role{
		ID: testRoleID, Permissions: model.PermissionBanMembers,
	}})

	perms, err := c.Permissions().Root(testUserID, testGuildID)
	require.NoError(t, err)
	assert.True(t, perms.Has(model.PermissionViewChannel))
	assert.True(t, perms.Has(model.PermissionCreateInstantInvite))
	assert.True(t, perms.Has(model.PermissionBanMembers))
	assert.False(t, perms.Has(model.PermissionAdministrator))
}

func TestRootAdministratorShortCircuits(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID: testGuildID,
		User:    &model.User{ID: testUserID},
		Roles:   []model.RoleID{testRoleID},
	}})
	c.Update(model.RoleCreate{GuildID: testGuildID, Role: model.Role{
		ID: testRoleID, Permissions: model.PermissionAdministrator,
	}})

	perms, err := c.Permissions().Root(testUserID, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionsAll, perms)
}

func TestRootTimedOutMemberIsMaskedToReadOnly(t *testing.T) {
	everyone := model.PermissionSendMessages | model.PermissionViewChannel |
		model.PermissionReadMessageHistory | model.PermissionCreateInstantInvite
	c := baseGuildCache(t, everyone)

	future := time.Now().Add(10 * time.Minute)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID:                    testGuildID,
		User:                       &model.User{ID: testUserID},
		CommunicationDisabledUntil: &future,
	}})

	perms, err := c.Permissions().Root(testUserID, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberCommunicationDisabledAllowlist, perms)
}

func TestRootTimeoutCheckCanBeDisabled(t *testing.T) {
	everyone := model.PermissionSendMessages | model.PermissionViewChannel
	c := baseGuildCache(t, everyone)

	future := time.Now().Add(10 * time.Minute)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID:                    testGuildID,
		User:                       &model.User{ID: testUserID},
		CommunicationDisabledUntil: &future,
	}})

	perms, err := c.Permissions().CheckMemberCommunicationDisabled(false).Root(testUserID, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, everyone, perms)
}

func TestInChannelAppliesOverwriteOrder(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel|model.PermissionCreateInstantInvite)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID: testGuildID,
		User:    &model.User{ID: testUserID},
		Roles:   []model.RoleID{testRoleID},
	}})
	c.Update(model.RoleCreate{GuildID: testGuildID, Role: model.Role{
		ID: testRoleID, Permissions: model.PermissionSendMessages,
	}})

	c.Update(model.ChannelCreate{Channel: model.Channel{
		ID:      testChannelID,
		GuildID: testGuildID,
		Type:    model.ChannelTypeGuildText,
		PermissionOverwrites: []model.PermissionOverwrite{
			{
				ID:   model.OverwriteTargetID(model.EveryoneRoleID(testGuildID)),
				Type: model.PermissionOverwriteRole,
				Deny: model.PermissionCreateInstantInvite,
			},
			{
				ID:    model.OverwriteTargetID(testUserID),
				Type:  model.PermissionOverwriteMember,
				Allow: model.PermissionEmbedLinks,
			},
		},
	}})

	perms, err := c.Permissions().InChannel(testUserID, testChannelID)
	require.NoError(t, err)
	assert.True(t, perms.Has(model.PermissionSendMessages), "role permission must survive")
	assert.True(t, perms.Has(model.PermissionEmbedLinks), "member overwrite allow must apply")
	assert.False(t, perms.Has(model.PermissionCreateInstantInvite), "everyone overwrite deny must apply")
}

func TestInChannelThreadInheritsParentOverwrites(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)
	c.Update(model.MemberAdd{Member: model.Member{
		GuildID: testGuildID,
		User:    &model.User{ID: testUserID},
	}})

	c.Update(model.ChannelCreate{Channel: model.Channel{
		ID:      testChannelID,
		GuildID: testGuildID,
		Type:    model.ChannelTypeGuildText,
		PermissionOverwrites: []model.PermissionOverwrite{
			{
				ID:    model.OverwriteTargetID(model.EveryoneRoleID(testGuildID)),
				Type:  model.PermissionOverwriteRole,
				Allow: model.PermissionSendMessages,
			},
		},
	}})

	threadID := model.NewID[model.ChannelMarker](99)
	c.Update(model.ThreadCreate{Channel: model.Channel{
		ID:       threadID,
		GuildID:  testGuildID,
		Type:     model.ChannelTypePublicThread,
		ParentID: &testChannelID,
		PermissionOverwrites: []model.PermissionOverwrite{
			{
				ID:    model.OverwriteTargetID(model.EveryoneRoleID(testGuildID)),
				Type:  model.PermissionOverwriteRole,
				Allow: model.PermissionAttachFiles,
			},
		},
	}})

	perms, err := c.Permissions().InChannel(testUserID, threadID)
	require.NoError(t, err)
	assert.True(t, perms.Has(model.PermissionSendMessages), "parent overwrite must apply to the thread")
	assert.True(t, perms.Has(model.PermissionAttachFiles), "thread's own overwrite must also apply")
}

func TestInChannelThreadWithoutParentIsError(t *testing.T) {
	c := baseGuildCache(t, model.PermissionViewChannel)
	c.Update(model.MemberAdd{Member: model.Member{GuildID: testGuildID, User: &model.User{ID: testUserID}}})

	threadID := model.NewID[model.ChannelMarker](99)
	c.Update(model.ThreadCreate{Channel: model.Channel{
		ID:      threadID,
		GuildID: testGuildID,
		Type:    model.ChannelTypePublicThread,
	}})

	_, err := c.Permissions().InChannel(testUserID, threadID)
	require.Error(t, err)

	cacheErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindParentChannelNotPresent, cacheErr.Kind())
}
