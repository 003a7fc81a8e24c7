package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathMatchRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		route  Route
		params map[string]string
	}{
		{"get channel", RouteGetChannel, map[string]string{"channel_id": "123"}},
		{"edit message", RouteEditMessage, map[string]string{"channel_id": "123", "message_id": "456"}},
		{"create reaction", RouteCreateReaction, map[string]string{
			"channel_id": "123",
			"message_id": "456",
			"emoji":      "%F0%9F%91%8D",
		}},
		{"delete user reaction", RouteDeleteUserReaction, map[string]string{
			"channel_id": "123",
			"message_id": "456",
			"emoji":      "custom%3Aname%3A789",
			"user_id":    "999",
		}},
		{"modify guild role", RouteModifyGuildRole, map[string]string{"guild_id": "1", "role_id": "2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := Path(tc.route, tc.params)

			gotRoute, gotParams, ok := Match(Method(tc.route), path)
			require.True(t, ok, "Match must recognize a path produced by Path")
			assert.Equal(t, tc.route, gotRoute)

			for k, v := range tc.params {
				assert.Equal(t, v, gotParams[k])
			}

			assert.Equal(t, BucketKey(tc.route, tc.params), BucketKey(gotRoute, gotParams),
				"a round-tripped path must resolve to the same rate-limit bucket")
		})
	}
}

func TestBucketKeyIgnoresNonPartitioningIDs(t *testing.T) {
	channelID := map[string]string{"channel_id": "1"}

	a := BucketKey(RouteGetMessage, map[string]string{"channel_id": "1", "message_id": "111"})
	b := BucketKey(RouteGetMessage, map[string]string{"channel_id": "1", "message_id": "222"})
	assert.Equal(t, a, b, "the message-by-ID bucket is shared across every message in a channel")

	c := BucketKey(RouteGetChannel, channelID)
	assert.NotEqual(t, a, c, "different routes must not collide on the same bucket")
}

func TestMatchRejectsUnknownPath(t *testing.T) {
	_, _, ok := Match("GET", "/not/a/real/route")
	assert.False(t, ok)
}

func TestPathPanicsOnMissingParameter(t *testing.T) {
	assert.Panics(t, func() {
		Path(RouteGetChannel, map[string]string{})
	})
}
