package model

import "time"

// ChannelType distinguishes guild text/voice/category/forum channels,
// private DMs, group DMs, and the various thread kinds.
type ChannelType int

const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildAnnouncement
	_
	_
	_
	_
	ChannelTypeAnnouncementThread
	ChannelTypePublicThread
	ChannelTypePrivateThread
	ChannelTypeGuildStageVoice
	ChannelTypeGuildDirectory
	ChannelTypeGuildForum
	ChannelTypeGuildMedia
)

// IsThread reports whether this channel type is one of the thread kinds.
func (t ChannelType) IsThread() bool {
	switch t {
	case ChannelTypeAnnouncementThread, ChannelTypePublicThread, ChannelTypePrivateThread:
		return true
	default:
		return false
	}
}

// PermissionOverwriteType distinguishes a role overwrite from a member
// overwrite.
type PermissionOverwriteType int

const (
	PermissionOverwriteRole   PermissionOverwriteType = 0
	PermissionOverwriteMember PermissionOverwriteType = 1
)

// OverwriteMarker tags the ID of a permission overwrite's target, which is
// either a role ID or a user ID depending on Type.
type OverwriteMarker struct{}

// OverwriteTargetID is the raw ID of a permission overwrite's target.
type OverwriteTargetID = ID[OverwriteMarker]

// PermissionOverwrite is a per-channel permission delta keyed by role or
// member.
type PermissionOverwrite struct {
	ID    OverwriteTargetID       `json:"id"`
	Type  PermissionOverwriteType `json:"type"`
	Allow Permissions             `json:"allow"`
	Deny  Permissions             `json:"deny"`
}

// ThreadMetadata carries thread-specific fields absent from ordinary
// channels.
type ThreadMetadata struct {
	Archived            bool      `json:"archived"`
	AutoArchiveDuration  int       `json:"auto_archive_duration"`
	ArchiveTimestamp     time.Time `json:"archive_timestamp"`
	Locked               bool      `json:"locked"`
	Invitable            bool      `json:"invitable,omitempty"`
	CreateTimestamp      *time.Time `json:"create_timestamp,omitempty"`
}

// Channel is a guild channel, private channel, group DM, or thread. The same
// type backs all kinds; GuildID is zero for channels that are not
// guild-owned (private DMs, group DMs).
type Channel struct {
	ID                   ChannelID              `json:"id"`
	Type                 ChannelType            `json:"type"`
	GuildID              GuildID                `json:"guild_id,omitempty"`
	Position             int                    `json:"position,omitempty"`
	PermissionOverwrites []PermissionOverwrite  `json:"permission_overwrites,omitempty"`
	Name                 string                 `json:"name,omitempty"`
	Topic                string                 `json:"topic,omitempty"`
	NSFW                 bool                   `json:"nsfw,omitempty"`
	LastMessageID        *MessageID             `json:"last_message_id,omitempty"`
	Bitrate              int                    `json:"bitrate,omitempty"`
	UserLimit            int                    `json:"user_limit,omitempty"`
	RateLimitPerUser     int                    `json:"rate_limit_per_user,omitempty"`
	Recipients           []User                 `json:"recipients,omitempty"`
	Icon                 string                 `json:"icon,omitempty"`
	OwnerID              UserID                 `json:"owner_id,omitempty"`
	ApplicationID        ApplicationID          `json:"application_id,omitempty"`
	ParentID             *ChannelID             `json:"parent_id,omitempty"`
	LastPinTimestamp     *time.Time             `json:"last_pin_timestamp,omitempty"`
	RTCRegion            string                 `json:"rtc_region,omitempty"`
	VideoQualityMode     int                    `json:"video_quality_mode,omitempty"`
	MessageCount         int                    `json:"message_count,omitempty"`
	MemberCount          int                    `json:"member_count,omitempty"`
	ThreadMetadata       *ThreadMetadata        `json:"thread_metadata,omitempty"`
	Flags                int                    `json:"flags,omitempty"`
}

// IsGuildOwned reports whether this channel belongs to a guild (as opposed
// to a private DM or group DM).
func (c *Channel) IsGuildOwned() bool {
	return !c.GuildID.IsZero()
}
