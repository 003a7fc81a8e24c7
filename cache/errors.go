package cache

import (
	"fmt"

	"github.com/relaywire/relay-go/model"
	"golang.org/x/xerrors"
)

// ErrorKind distinguishes the cases a permission query can fail, mirroring
// twilight-cache-inmemory's ChannelErrorType/RootErrorType enums. It is
// non-exhaustive by convention: callers should have a default case.
type ErrorKind int

const (
	KindChannelUnavailable ErrorKind = iota
	KindChannelNotInGuild
	KindParentChannelNotPresent
	KindMemberUnavailable
	KindRoleUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindChannelUnavailable:
		return "channel_unavailable"
	case KindChannelNotInGuild:
		return "channel_not_in_guild"
	case KindParentChannelNotPresent:
		return "parent_channel_not_present"
	case KindMemberUnavailable:
		return "member_unavailable"
	case KindRoleUnavailable:
		return "role_unavailable"
	default:
		return "unknown"
	}
}

// Error is the structured error type returned by Cache.Permissions.
// Grounded on twilight's ChannelError/RootError pair; both are represented
// by this one type here since the only difference upstream is which kinds
// each operation can surface.
type Error struct {
	kind ErrorKind

	channelID model.ChannelID
	guildID   model.GuildID
	userID    model.UserID
	roleID    model.RoleID
}

// Kind reports which case of the taxonomy this error represents.
func (e *Error) Kind() ErrorKind { return e.kind }

func (e *Error) Error() string {
	switch e.kind {
	case KindChannelUnavailable:
		return fmt.Sprintf("channel %s is either not in the cache or is not a guild channel", e.channelID)
	case KindChannelNotInGuild:
		return fmt.Sprintf("channel %s is not in a guild", e.channelID)
	case KindParentChannelNotPresent:
		return fmt.Sprintf("thread %s has no parent", e.channelID)
	case KindMemberUnavailable:
		return fmt.Sprintf("member (guild: %s; user: %s) is not present in the cache", e.guildID, e.userID)
	case KindRoleUnavailable:
		return fmt.Sprintf("member has role %s but it is not present in the cache", e.roleID)
	default:
		return "cache: unknown error"
	}
}

func errChannelUnavailable(channelID model.ChannelID) error {
	return xerrors.Errorf("cache: %w", &Error{kind: KindChannelUnavailable, channelID: channelID})
}

func errChannelNotInGuild(channelID model.ChannelID) error {
	return xerrors.Errorf("cache: %w", &Error{kind: KindChannelNotInGuild, channelID: channelID})
}

func errParentChannelNotPresent(threadID model.ChannelID) error {
	return xerrors.Errorf("cache: %w", &Error{kind: KindParentChannelNotPresent, channelID: threadID})
}

func errMemberUnavailable(guildID model.GuildID, userID model.UserID) error {
	return xerrors.Errorf("cache: %w", &Error{kind: KindMemberUnavailable, guildID: guildID, userID: userID})
}

func errRoleUnavailable(roleID model.RoleID) error {
	return xerrors.Errorf("cache: %w", &Error{kind: KindRoleUnavailable, roleID: roleID})
}

// AsError extracts the cache *Error wrapped (if any) in err, the idiom
// used throughout for typed downcasting after xerrors.Errorf wrapping.
func AsError(err error) (*Error, bool) {
	var cacheErr *Error

	ok := xerrors.As(err, &cacheErr)

	return cacheErr, ok
}
