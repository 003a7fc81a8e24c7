package cache

import (
	"testing"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildCreateIdempotent(t *testing.T) {
	c := New()

	guild := model.Guild{
		ID:      model.NewID[model.GuildMarker](1),
		Name:    "test",
		OwnerID: model.NewID[model.UserMarker](2),
		Channels: []model.Channel{
			{ID: model.NewID[model.ChannelMarker](3), GuildID: model.NewID[model.GuildMarker](1)},
		},
		Roles: []model.Role{{ID: model.EveryoneRoleID(model.NewID[model.GuildMarker](1))}},
	}

	c.Update(model.GuildCreate{Guild: guild})
	c.Update(model.GuildCreate{Guild: guild})

	got, ok := c.Guild(guild.ID)
	require.True(t, ok)
	assert.Equal(t, "test", got.Name)
	assert.Equal(t, 1, len(c.GuildChannelIDs(guild.ID)), "applying GuildCreate twice must not duplicate channels")
	assert.Equal(t, 25000, got.MaxPresences, "unset max_presences defaults to 25000")
}

func TestGuildUpdateAppliesDefaultMaxPresences(t *testing.T) {
	c := New()
	guildID := model.NewID[model.GuildMarker](1)

	c.Update(model.GuildUpdate{Guild: model.Guild{ID: guildID, Name: "v1"}})

	got, ok := c.Guild(guildID)
	require.True(t, ok)
	assert.Equal(t, 25000, got.MaxPresences)
}

func TestGuildDeleteCascadesOwnedResources(t *testing.T) {
	c := New()
	guildID := model.NewID[model.GuildMarker](1)
	channelID := model.NewID[model.ChannelMarker](2)
	userID := model.NewID[model.UserMarker](3)

	c.Update(model.GuildCreate{Guild: model.Guild{
		ID:      guildID,
		OwnerID: model.NewID[model.UserMarker](99),
		Channels: []model.Channel{
			{ID: channelID, GuildID: guildID},
		},
		Roles: []model.Role{{ID: model.EveryoneRoleID(guildID)}},
		Members: []model.Member{
			{GuildID: guildID, User: &model.User{ID: userID}},
		},
	}})

	_, ok := c.Channel(channelID)
	require.True(t, ok)
	_, ok = c.Member(guildID, userID)
	require.True(t, ok)
	_, ok = c.User(userID)
	require.True(t, ok)

	c.Update(model.GuildDelete{ID: guildID, Unavailable: false})

	_, ok = c.Guild(guildID)
	assert.False(t, ok)
	_, ok = c.Channel(channelID)
	assert.False(t, ok, "GuildDelete must remove owned channels via the reverse index")
	_, ok = c.Member(guildID, userID)
	assert.False(t, ok)
	_, ok = c.User(userID)
	assert.False(t, ok, "the user's only guild reference is gone, so the user itself is evicted")
}

func TestGuildDeleteCascadesVoiceStates(t *testing.T) {
	c := New()
	guildID := model.NewID[model.GuildMarker](1)
	channelID := model.NewID[model.ChannelMarker](2)
	userID := model.NewID[model.UserMarker](3)

	c.Update(model.GuildCreate{Guild: model.Guild{
		ID:      guildID,
		OwnerID: model.NewID[model.UserMarker](99),
		Roles:   []model.Role{{ID: model.EveryoneRoleID(guildID)}},
		VoiceStates: []model.VoiceState{
			{GuildID: guildID, ChannelID: &channelID, UserID: userID},
		},
	}})

	_, ok := c.VoiceState(guildID, userID)
	require.True(t, ok)
	require.Len(t, c.ChannelVoiceStates(channelID), 1)

	c.Update(model.GuildDelete{ID: guildID, Unavailable: false})

	_, ok = c.VoiceState(guildID, userID)
	assert.False(t, ok, "GuildDelete must remove voice states via the guild-level reverse index")
	assert.Empty(t, c.ChannelVoiceStates(channelID), "the channel-level reverse index must be cleaned up too")
}

func TestGuildDeleteUnavailableDoesNotCascade(t *testing.T) {
	c := New()
	guildID := model.NewID[model.GuildMarker](1)
	channelID := model.NewID[model.ChannelMarker](2)

	c.Update(model.GuildCreate{Guild: model.Guild{
		ID:       guildID,
		Channels: []model.Channel{{ID: channelID, GuildID: guildID}},
	}})

	c.Update(model.GuildDelete{ID: guildID, Unavailable: true})

	_, ok := c.Channel(channelID)
	assert.True(t, ok, "an outage delete must not remove owned resources")
	assert.True(t, c.GuildUnavailable(guildID))
}

func TestMemberRemoveGCsUserOnlyWhenNoGuildReferencesRemain(t *testing.T) {
	c := New()
	userID := model.NewID[model.UserMarker](1)
	guildA := model.NewID[model.GuildMarker](10)
	guildB := model.NewID[model.GuildMarker](20)

	c.Update(model.MemberAdd{Member: model.Member{GuildID: guildA, User: &model.User{ID: userID}}})
	c.Update(model.MemberAdd{Member: model.Member{GuildID: guildB, User: &model.User{ID: userID}}})

	c.Update(model.MemberRemove{GuildID: guildA, User: model.User{ID: userID}})

	_, ok := c.User(userID)
	assert.True(t, ok, "the user is still reachable via guildB")

	c.Update(model.MemberRemove{GuildID: guildB, User: model.User{ID: userID}})

	_, ok = c.User(userID)
	assert.False(t, ok, "the user's last guild reference is gone")
}

func TestMessageCacheEvictsOldestPastCapacity(t *testing.T) {
	c := WithConfig(Config{MessageCacheSize: 3})
	channelID := model.NewID[model.ChannelMarker](1)

	for i := uint64(1); i <= 5; i++ {
		c.Update(model.MessageCreate{Message: model.Message{
			ID:        model.NewID[model.MessageMarker](i),
			ChannelID: channelID,
			Author:    model.User{ID: model.NewID[model.UserMarker](1)},
		}})
	}

	for i := uint64(1); i <= 2; i++ {
		_, ok := c.Message(channelID, model.NewID[model.MessageMarker](i))
		assert.False(t, ok, "the two oldest messages must be evicted")
	}

	for i := uint64(3); i <= 5; i++ {
		_, ok := c.Message(channelID, model.NewID[model.MessageMarker](i))
		assert.True(t, ok, "the three most recent messages must be retained")
	}
}

func TestReactionLifecycle(t *testing.T) {
	c := New()
	channelID := model.NewID[model.ChannelMarker](1)
	messageID := model.NewID[model.MessageMarker](2)

	c.Update(model.MessageCreate{Message: model.Message{
		ID:        messageID,
		ChannelID: channelID,
		Author:    model.User{ID: model.NewID[model.UserMarker](9)},
	}})

	emoji := model.ReactionEmoji{Name: "\U0001F44D"}

	c.Update(model.ReactionAdd{
		ChannelID: channelID,
		MessageID: messageID,
		UserID:    model.NewID[model.UserMarker](1),
		Emoji:     emoji,
	})
	c.Update(model.ReactionAdd{
		ChannelID: channelID,
		MessageID: messageID,
		UserID:    model.NewID[model.UserMarker](2),
		Emoji:     emoji,
	})

	msg, ok := c.Message(channelID, messageID)
	require.True(t, ok)
	require.Len(t, msg.Reactions, 1)
	assert.Equal(t, 2, msg.Reactions[0].Count)

	c.Update(model.ReactionRemove{
		ChannelID: channelID,
		MessageID: messageID,
		UserID:    model.NewID[model.UserMarker](1),
		Emoji:     emoji,
	})

	msg, ok = c.Message(channelID, messageID)
	require.True(t, ok)
	require.Len(t, msg.Reactions, 1)
	assert.Equal(t, 1, msg.Reactions[0].Count)

	c.Update(model.ReactionRemove{
		ChannelID: channelID,
		MessageID: messageID,
		UserID:    model.NewID[model.UserMarker](2),
		Emoji:     emoji,
	})

	msg, ok = c.Message(channelID, messageID)
	require.True(t, ok)
	assert.Empty(t, msg.Reactions, "a reaction reaching zero count must be removed entirely")
}

func TestVoiceStateUpdateMaintainsChannelReverseIndex(t *testing.T) {
	c := New()
	guildID := model.NewID[model.GuildMarker](1)
	userID := model.NewID[model.UserMarker](2)
	channelA := model.NewID[model.ChannelMarker](3)
	channelB := model.NewID[model.ChannelMarker](4)

	c.Update(model.VoiceStateUpdate{VoiceState: model.VoiceState{
		GuildID: guildID, UserID: userID, ChannelID: &channelA,
	}})

	assert.Len(t, c.ChannelVoiceStates(channelA), 1)

	c.Update(model.VoiceStateUpdate{VoiceState: model.VoiceState{
		GuildID: guildID, UserID: userID, ChannelID: &channelB,
	}})

	assert.Empty(t, c.ChannelVoiceStates(channelA), "moving channels must remove the old reverse-index entry")
	assert.Len(t, c.ChannelVoiceStates(channelB), 1)

	c.Update(model.VoiceStateUpdate{VoiceState: model.VoiceState{
		GuildID: guildID, UserID: userID, ChannelID: nil,
	}})

	assert.Empty(t, c.ChannelVoiceStates(channelB), "disconnecting must remove the voice state and index entry")
	_, ok := c.VoiceState(guildID, userID)
	assert.False(t, ok)
}

func TestResourceTypeGatingSkipsDisabledFamilies(t *testing.T) {
	c := WithConfig(Config{ResourceTypes: model.ResourceGuild})

	c.Update(model.ChannelCreate{Channel: model.Channel{
		ID:      model.NewID[model.ChannelMarker](1),
		GuildID: model.NewID[model.GuildMarker](2),
	}})

	_, ok := c.Channel(model.NewID[model.ChannelMarker](1))
	assert.False(t, ok, "ResourceChannel is disabled, so ChannelCreate must be a no-op")
}

func TestChannelPinsUpdateOnlyMutatesTimestamp(t *testing.T) {
	c := New()
	channelID := model.NewID[model.ChannelMarker](1)

	c.Update(model.ChannelCreate{Channel: model.Channel{ID: channelID, Name: "general"}})

	ts := time.Now().UTC().Format(time.RFC3339)
	c.Update(model.ChannelPinsUpdate{ChannelID: channelID, LastPinTimestamp: &ts})

	got, ok := c.Channel(channelID)
	require.True(t, ok)
	assert.Equal(t, "general", got.Name, "ChannelPinsUpdate must not touch unrelated fields")
	require.NotNil(t, got.LastPinTimestamp)
}
