package gateway

import "github.com/relaywire/relay-go/model"

// ConnectionStatus is the coarse state of a Shard's underlying socket:
// connecting, identifying, connected, disconnected, or fatally closed.
type ConnectionStatus int

const (
	StatusConnecting ConnectionStatus = iota
	StatusIdentifying
	StatusConnected
	StatusDisconnected
	StatusFatallyClosed
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusIdentifying:
		return "identifying"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusFatallyClosed:
		return "fatally_closed"
	default:
		return "unknown"
	}
}

// Status is a snapshot of a Shard's connection state.
type Status struct {
	Connection       ConnectionStatus
	HasSession       bool
	CloseCode        *model.CloseCode
	ReconnectAttempts int
}

// IsFatallyClosed reports whether the shard has reached a terminal state
// the caller must not retry.
func (s Status) IsFatallyClosed() bool {
	return s.Connection == StatusFatallyClosed
}

// IsDisconnected reports whether the shard is eligible to reconnect.
func (s Status) IsDisconnected() bool {
	return s.Connection == StatusDisconnected
}
