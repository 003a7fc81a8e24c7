package model

import "time"

// Message is a channel message. Cached messages are stored by value in the
// per-channel bounded cache; MessageUpdate mutates only the fields present
// in the partial payload (see cache.updateMessageUpdate).
type Message struct {
	ID              MessageID   `json:"id"`
	ChannelID       ChannelID   `json:"channel_id"`
	GuildID         GuildID     `json:"guild_id,omitempty"`
	Author          User        `json:"author"`
	Member          *Member     `json:"member,omitempty"`
	Content         string      `json:"content"`
	Timestamp       time.Time   `json:"timestamp"`
	EditedTimestamp *time.Time  `json:"edited_timestamp,omitempty"`
	TTS             bool        `json:"tts"`
	MentionEveryone bool        `json:"mention_everyone"`
	Mentions        []User      `json:"mentions,omitempty"`
	MentionRoles    []RoleID    `json:"mention_roles,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed     `json:"embeds,omitempty"`
	Reactions       []Reaction  `json:"reactions,omitempty"`
	Pinned          bool        `json:"pinned"`
	Type            int         `json:"type"`
	Flags           int         `json:"flags,omitempty"`
}

// Attachment is an uploaded file on a message. Its field shape is left
// minimal; full DTO serialization is out of scope.
type Attachment struct {
	ID       AttachmentID `json:"id"`
	Filename string       `json:"filename"`
	Size     int          `json:"size"`
	URL      string       `json:"url"`
	ProxyURL string       `json:"proxy_url"`
}

// Embed is a message embed. Construction helpers are out of scope; only the
// wire shape needed for cache round-tripping is modeled.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Reaction is one emoji's aggregate reaction state on a message.
type Reaction struct {
	Count int            `json:"count"`
	Me    bool           `json:"me"`
	Emoji ReactionEmoji  `json:"emoji"`
}

// ReactionEmoji identifies the emoji of a reaction: either a custom emoji
// (ID set) or a unicode emoji (Name only, ID zero).
type ReactionEmoji struct {
	ID   EmojiID `json:"id,omitempty"`
	Name string  `json:"name"`
}

// Key returns a value suitable for matching two ReactionEmoji referring to
// the same emoji: custom emojis match by ID, unicode emojis by name.
func (e ReactionEmoji) Key() string {
	if !e.ID.IsZero() {
		return "id:" + e.ID.String()
	}

	return "name:" + e.Name
}
