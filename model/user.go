package model

// User is a platform account. Users are reference-counted across guilds in
// the cache: a User value here is the shape stored once per unique account.
type User struct {
	ID            UserID `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
	System        bool   `json:"system,omitempty"`
	Banner        string `json:"banner,omitempty"`
	AccentColor   *int   `json:"accent_color,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Flags         int    `json:"flags,omitempty"`
	PremiumType   int    `json:"premium_type,omitempty"`
	PublicFlags   int    `json:"public_flags,omitempty"`
}
