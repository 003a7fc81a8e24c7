package model

// Session is the server-side state needed to resume a gateway connection on
// a new socket without a full re-Identify.
type Session struct {
	SessionID        string
	Sequence         uint64
	ResumeGatewayURL string
}

// Opcode is a gateway websocket frame opcode.
type Opcode int

const (
	OpDispatch            Opcode = 0
	OpHeartbeat           Opcode = 1
	OpIdentify            Opcode = 2
	OpPresenceUpdate      Opcode = 3
	OpVoiceStateUpdate    Opcode = 4
	OpResume              Opcode = 6
	OpReconnect           Opcode = 7
	OpRequestGuildMembers Opcode = 8
	OpInvalidSession      Opcode = 9
	OpHello               Opcode = 10
	OpHeartbeatAck        Opcode = 11
)

// CloseCode is a 16-bit gateway websocket close code.
type CloseCode int

const (
	CloseUnknownError         CloseCode = 4000
	CloseUnknownOpcode        CloseCode = 4001
	CloseDecodeError          CloseCode = 4002
	CloseNotAuthenticated     CloseCode = 4003
	CloseAuthenticationFailed CloseCode = 4004
	CloseAlreadyAuthenticated CloseCode = 4005
	CloseInvalidSequence      CloseCode = 4007
	CloseRateLimited          CloseCode = 4008
	CloseSessionTimedOut      CloseCode = 4009
	CloseInvalidShard         CloseCode = 4010
	CloseShardingRequired     CloseCode = 4011
	CloseInvalidAPIVersion    CloseCode = 4012
	CloseInvalidIntents       CloseCode = 4013
	CloseDisallowedIntents    CloseCode = 4014
)

// IsFatal reports whether this close code is a known unrecoverable
// condition — the shard must not retry. Unknown codes are always
// recoverable.
func (c CloseCode) IsFatal() bool {
	switch c {
	case CloseAuthenticationFailed,
		CloseInvalidShard,
		CloseShardingRequired,
		CloseInvalidAPIVersion,
		CloseInvalidIntents,
		CloseDisallowedIntents:
		return true
	default:
		return false
	}
}

// Hello is the opcode-10 payload: the server's suggested heartbeat
// interval.
type Hello struct {
	HeartbeatIntervalMillis int64 `json:"heartbeat_interval"`
}

// Identify is the opcode-2 payload establishing a new session.
type Identify struct {
	Token          string              `json:"token"`
	Properties     IdentifyProperties  `json:"properties"`
	Compress       bool                `json:"compress,omitempty"`
	LargeThreshold int                 `json:"large_threshold,omitempty"`
	Shard          *[2]int             `json:"shard,omitempty"`
	Presence       *UpdatePresence     `json:"presence,omitempty"`
	Intents        Intents             `json:"intents"`
}

// IdentifyProperties describes the connecting client to the platform.
type IdentifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// Resume is the opcode-6 payload re-establishing a session on a new socket.
type Resume struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  uint64 `json:"seq"`
}

// UpdatePresence is the optional presence sent with Identify or as a
// standalone opcode-3 command.
type UpdatePresence struct {
	Since      *int64     `json:"since"`
	Activities []Activity `json:"activities"`
	Status     string     `json:"status"`
	AFK        bool       `json:"afk"`
}

// RequestGuildMembers is the opcode-8 command requesting a member chunk.
type RequestGuildMembers struct {
	GuildID   GuildID  `json:"guild_id"`
	Query     *string  `json:"query,omitempty"`
	Limit     int      `json:"limit"`
	Presences bool     `json:"presences,omitempty"`
	UserIDs   []UserID `json:"user_ids,omitempty"`
	Nonce     string   `json:"nonce,omitempty"`
}
