// Package httpclient is the REST counterpart to the gateway: a closed
// route enumeration, a bucket-keyed rate limiter, and an audit-reason
// validator. It is deliberately thin — route/URL construction, request
// body validation, and DTO (de)serialization for the ~200 REST models are
// out of scope; this package only owns the pieces every route shares:
// building a path, matching a path back to its bucket, and sending the
// request through the rate limiter with 429 retry.
package httpclient

import (
	"fmt"
	"regexp"
	"strings"
)

// Route names one logical REST call. The set is closed: every value has a
// registered routeSpec, and the accessor functions below panic on an
// unregistered Route rather than returning a zero value a caller could
// silently misuse.
type Route int

const (
	RouteGetChannel Route = iota
	RouteModifyChannel
	RouteCreateMessage
	RouteGetMessage
	RouteEditMessage
	RouteDeleteMessage
	RouteCreateReaction
	RouteDeleteOwnReaction
	RouteDeleteUserReaction
	RouteGetGuild
	RouteCreateGuildRole
	RouteModifyGuildRole
	RouteDeleteGuildRole
	RouteGetGuildMember
	RouteModifyGuildMember
	RouteRemoveGuildMember
)

// routeSpec binds a Route to its HTTP method, path template, and the
// function that derives its rate-limit bucket key from the path's named
// parameters. The route set is a closed enumeration: every logical call
// maps to exactly one (method, path template, rate-limit bucket key).
type routeSpec struct {
	method       string
	pathTemplate string
	pattern      *regexp.Regexp
	bucketKey    func(params map[string]string) string
}

// methodBucket is the common bucket-key shape: routes that collide on the
// server share a bucket whenever they differ only by an ID the server
// doesn't partition on (e.g. every message route under one channel shares
// a bucket regardless of which message).
func methodBucket(method, name string, keys ...string) func(map[string]string) string {
	return func(params map[string]string) string {
		parts := make([]string, 0, 2+2*len(keys))
		parts = append(parts, method, name)

		for _, k := range keys {
			parts = append(parts, k, params[k])
		}

		return strings.Join(parts, ":")
	}
}

var registry = map[Route]routeSpec{
	RouteGetChannel: {
		method:       "GET",
		pathTemplate: "/channels/{channel_id}",
		bucketKey:    methodBucket("GET", "channel", "channel_id"),
	},
	RouteModifyChannel: {
		method:       "PATCH",
		pathTemplate: "/channels/{channel_id}",
		bucketKey:    methodBucket("PATCH", "channel", "channel_id"),
	},
	RouteCreateMessage: {
		method:       "POST",
		pathTemplate: "/channels/{channel_id}/messages",
		bucketKey:    methodBucket("POST", "channel-messages", "channel_id"),
	},
	RouteGetMessage: {
		method:       "GET",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}",
		// Grouped by channel only: the server's message-by-ID bucket is
		// shared across every message ID in the channel.
		bucketKey: methodBucket("GET", "channel-message", "channel_id"),
	},
	RouteEditMessage: {
		method:       "PATCH",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}",
		bucketKey:    methodBucket("PATCH", "channel-message", "channel_id"),
	},
	RouteDeleteMessage: {
		method:       "DELETE",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}",
		bucketKey:    methodBucket("DELETE", "channel-message", "channel_id"),
	},
	RouteCreateReaction: {
		method:       "PUT",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/@me",
		bucketKey:    methodBucket("PUT", "reaction", "channel_id"),
	},
	RouteDeleteOwnReaction: {
		method:       "DELETE",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/@me",
		bucketKey:    methodBucket("DELETE", "reaction", "channel_id"),
	},
	RouteDeleteUserReaction: {
		method:       "DELETE",
		pathTemplate: "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/{user_id}",
		bucketKey:    methodBucket("DELETE", "reaction", "channel_id"),
	},
	RouteGetGuild: {
		method:       "GET",
		pathTemplate: "/guilds/{guild_id}",
		bucketKey:    methodBucket("GET", "guild", "guild_id"),
	},
	RouteCreateGuildRole: {
		method:       "POST",
		pathTemplate: "/guilds/{guild_id}/roles",
		bucketKey:    methodBucket("POST", "guild-roles", "guild_id"),
	},
	RouteModifyGuildRole: {
		method:       "PATCH",
		pathTemplate: "/guilds/{guild_id}/roles/{role_id}",
		bucketKey:    methodBucket("PATCH", "guild-role", "guild_id"),
	},
	RouteDeleteGuildRole: {
		method:       "DELETE",
		pathTemplate: "/guilds/{guild_id}/roles/{role_id}",
		bucketKey:    methodBucket("DELETE", "guild-role", "guild_id"),
	},
	RouteGetGuildMember: {
		method:       "GET",
		pathTemplate: "/guilds/{guild_id}/members/{user_id}",
		bucketKey:    methodBucket("GET", "guild-member", "guild_id"),
	},
	RouteModifyGuildMember: {
		method:       "PATCH",
		pathTemplate: "/guilds/{guild_id}/members/{user_id}",
		bucketKey:    methodBucket("PATCH", "guild-member", "guild_id"),
	},
	RouteRemoveGuildMember: {
		method:       "DELETE",
		pathTemplate: "/guilds/{guild_id}/members/{user_id}",
		bucketKey:    methodBucket("DELETE", "guild-member", "guild_id"),
	},
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// compilePattern turns a "/channels/{channel_id}/messages/{message_id}"
// template into an anchored regexp with one named capture group per
// placeholder, escaping every literal segment in between.
func compilePattern(tmpl string) *regexp.Regexp {
	var b strings.Builder

	b.WriteString("^")

	last := 0
	for _, loc := range placeholder.FindAllStringSubmatchIndex(tmpl, -1) {
		b.WriteString(regexp.QuoteMeta(tmpl[last:loc[0]]))
		b.WriteString("(?P<" + tmpl[loc[2]:loc[3]] + ">[^/]+)")
		last = loc[1]
	}

	b.WriteString(regexp.QuoteMeta(tmpl[last:]))
	b.WriteString("$")

	return regexp.MustCompile(b.String())
}

func init() {
	for route, spec := range registry {
		spec.pattern = compilePattern(spec.pathTemplate)
		registry[route] = spec
	}
}

func specFor(route Route) routeSpec {
	spec, ok := registry[route]
	if !ok {
		panic(fmt.Sprintf("httpclient: unregistered route %d", route))
	}

	return spec
}

// Path builds a route's concrete path, substituting each placeholder by
// name. It panics if a required placeholder has no entry in params — a
// programmer error, since the route set and its placeholders are both
// closed and known at compile time.
func Path(route Route, params map[string]string) string {
	spec := specFor(route)

	path := spec.pathTemplate
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
	}

	if strings.Contains(path, "{") {
		panic(fmt.Sprintf("httpclient: path %q missing a required parameter", spec.pathTemplate))
	}

	return path
}

// Method returns the HTTP method for route.
func Method(route Route) string {
	return specFor(route).method
}

// BucketKey returns the rate-limit bucket key for route given its path
// parameters: calls that share a server-side limit resolve to the same
// key regardless of which concrete IDs they target.
func BucketKey(route Route, params map[string]string) string {
	return specFor(route).bucketKey(params)
}

// Match maps a concrete (method, path) pair back to its Route and
// extracted parameters, the inverse of Path. The client does not call it
// (it derives bucket keys with BucketKey); tests use it to assert the
// round-trip Path(route, params) → Match → same route/bucket.
func Match(method, path string) (Route, map[string]string, bool) {
	for route, spec := range registry {
		if spec.method != method {
			continue
		}

		m := spec.pattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}

		params := make(map[string]string, len(m)-1)

		for i, name := range spec.pattern.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}

			params[name] = m[i]
		}

		return route, params, true
	}

	return 0, nil, false
}
