package gateway

import (
	"testing"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/stretchr/testify/assert"
)

func TestCloseCodeIsFatal(t *testing.T) {
	fatal := []model.CloseCode{
		model.CloseAuthenticationFailed,
		model.CloseInvalidShard,
		model.CloseShardingRequired,
		model.CloseInvalidAPIVersion,
		model.CloseInvalidIntents,
		model.CloseDisallowedIntents,
	}

	for _, code := range fatal {
		assert.Truef(t, code.IsFatal(), "expected %d to be fatal", code)
	}

	recoverable := []model.CloseCode{
		model.CloseUnknownError,
		model.CloseUnknownOpcode,
		model.CloseDecodeError,
		model.CloseNotAuthenticated,
		model.CloseAlreadyAuthenticated,
		model.CloseInvalidSequence,
		model.CloseRateLimited,
		model.CloseSessionTimedOut,
		model.CloseCode(9999), // unknown codes are never fatal
	}

	for _, code := range recoverable {
		assert.Falsef(t, code.IsFatal(), "expected %d to be recoverable", code)
	}
}

func TestStatusIsFatallyClosedAndDisconnected(t *testing.T) {
	code := model.CloseAuthenticationFailed

	fatal := Status{Connection: StatusFatallyClosed, CloseCode: &code}
	assert.True(t, fatal.IsFatallyClosed())
	assert.False(t, fatal.IsDisconnected())

	disconnected := Status{Connection: StatusDisconnected}
	assert.False(t, disconnected.IsFatallyClosed())
	assert.True(t, disconnected.IsDisconnected())

	connected := Status{Connection: StatusConnected}
	assert.False(t, connected.IsFatallyClosed())
	assert.False(t, connected.IsDisconnected())
}

func TestReconnectDelayCapsExponentialBackoff(t *testing.T) {
	sh := &Shard{
		cfg: Config{
			ReconnectBaseDelay: 100 * time.Millisecond,
			ReconnectMaxDelay:  5 * time.Second,
		},
	}

	sh.reconnectAttempts = 0
	assert.Equal(t, 100*time.Millisecond, sh.reconnectDelay())

	sh.reconnectAttempts = 3
	assert.Equal(t, 800*time.Millisecond, sh.reconnectDelay())

	// Large attempt counts must saturate at ReconnectMaxDelay rather than
	// overflowing the shift.
	sh.reconnectAttempts = 50
	assert.Equal(t, 5*time.Second, sh.reconnectDelay())
}

func TestCheckSequenceGapDetectsSkippedSequence(t *testing.T) {
	sh := &Shard{}
	sh.seq.Store(5)

	assert.False(t, sh.checkSequenceGap(6), "consecutive sequence is not a gap")
	assert.True(t, sh.checkSequenceGap(8), "skipping 6 and 7 is a gap")

	sh2 := &Shard{}
	assert.False(t, sh2.checkSequenceGap(1), "no prior sequence means no gap is possible yet")
}

func TestGatewayURLPrecedence(t *testing.T) {
	sh := &Shard{
		cfg: Config{GatewayURL: "wss://configured.example"},
	}

	// No session yet: always the configured URL.
	assert.Equal(t, "wss://configured.example", sh.gatewayURL())

	sh.session = &model.Session{ResumeGatewayURL: "wss://resume.example"}
	assert.Equal(t, "wss://resume.example", sh.gatewayURL(), "session resume URL wins by default")

	sh.cfg.OverrideResumeURL = true
	assert.Equal(t, "wss://configured.example", sh.gatewayURL(), "OverrideResumeURL forces the configured URL")
}

func TestTransitionDisconnectedDropsSessionWhenNotResumable(t *testing.T) {
	sh := &Shard{session: &model.Session{SessionID: "abc"}}

	sh.transitionDisconnected(nil, true)
	assert.NotNil(t, sh.Session(), "a resumable close must retain the session")

	sh.session = &model.Session{SessionID: "abc"}
	sh.transitionDisconnected(nil, false)
	assert.Nil(t, sh.Session(), "a non-resumable close must drop the session")
}
