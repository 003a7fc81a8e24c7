package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/relaywire/relay-go/internal/ratelimit"
	"github.com/relaywire/relay-go/model"
	"github.com/rs/zerolog"
	"github.com/tevino/abool"
	"golang.org/x/xerrors"
	"nhooyr.io/websocket"
)

const (
	// commandRatelimitCapacity and commandRatelimitWindow are the
	// defaults applied before Hello is received: a per-shard bucket of
	// 120 commands per minute.
	commandRatelimitCapacity = 120
	commandRatelimitWindow   = 60 * time.Second

	websocketReadLimit = 64 << 20

	readChannelBuffer = 64
)

// Shard owns exactly one gateway websocket connection: identify/resume,
// heartbeating, dispatch delivery, outbound command ratelimiting, and
// transparent reconnect. Generalized from a daemon-owned shard (group
// membership, webhook alerts, producer fan-out) to a standalone library
// type a caller drives directly.
type Shard struct {
	id         int
	shardCount int
	cfg        Config
	logger     zerolog.Logger

	// mu guards every field below that the drive loop and external
	// observer calls (Status, Session, Latency) can race on. Held only
	// for the duration of a field read/write, never across a suspension
	// point — the same discipline the cache package holds itself to.
	mu sync.RWMutex

	status            ConnectionStatus
	session           *model.Session
	closeCode         *model.CloseCode
	reconnectAttempts int
	latency           time.Duration

	seq atomic.Uint64

	heartbeatInterval time.Duration
	heartbeatMu       sync.Mutex
	lastHeartbeatSent time.Time
	lastHeartbeatAck  time.Time
	nextHeartbeatDue  time.Time

	conn         *websocket.Conn
	decomp       *decompressor
	readMessages chan model.Frame
	readErrors   chan error

	outbound   chan outboundFrame
	ratelimiter *ratelimit.Bucket

	// closing marks the transient window between Close starting and the
	// close frame finishing its write. Checked lock-free on every outbound
	// write so a goroutine racing a concurrent Close fails fast instead of
	// writing to a socket mid-teardown.
	closing *abool.AtomicBool

	connCtx    context.Context
	connCancel context.CancelFunc
}

// New constructs a Shard with default configuration. Establishes the
// initial connection; the only errors it returns are network/TLS dial
// failures.
func New(ctx context.Context, shardID int, token string, intents model.Intents) (*Shard, error) {
	return WithConfig(ctx, shardID, Config{
		Token:      token,
		Intents:    intents,
		ShardID:    shardID,
		ShardCount: 1,
	})
}

// WithConfig constructs a Shard with explicit configuration and dials the
// gateway.
func WithConfig(ctx context.Context, shardID int, cfg Config) (*Shard, error) {
	cfg = cfg.WithDefaults()

	if cfg.ShardCount == 0 {
		cfg.ShardCount = 1
	}

	sh := &Shard{
		id:         shardID,
		shardCount: cfg.ShardCount,
		cfg:        cfg,
		logger:     cfg.Logger.With().Int("shard_id", shardID).Logger(),
		status:     StatusConnecting,
		session:    cfg.Session,
		outbound:   make(chan outboundFrame, readChannelBuffer),
		closing:    abool.New(),
	}

	if cfg.RatelimitCommands {
		sh.ratelimiter = ratelimit.New(commandRatelimitCapacity, commandRatelimitWindow)
	}

	if err := sh.dial(ctx); err != nil {
		return nil, newError(KindEstablishing, err)
	}

	return sh, nil
}

// ID returns this shard's index within its shard group.
func (sh *Shard) ID() int { return sh.id }

// Config returns a copy of the shard's configuration.
func (sh *Shard) Config() Config { return sh.cfg }

// Status returns a snapshot of the shard's connection state.
func (sh *Shard) Status() Status {
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	return Status{
		Connection:        sh.status,
		HasSession:        sh.session != nil,
		CloseCode:         sh.closeCode,
		ReconnectAttempts: sh.reconnectAttempts,
	}
}

// Session returns the shard's current session, or nil if it holds none.
func (sh *Shard) Session() *model.Session {
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	if sh.session == nil {
		return nil
	}

	cp := *sh.session

	return &cp
}

// Latency returns the most recently observed heartbeat round-trip time.
func (sh *Shard) Latency() time.Duration {
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	return sh.latency
}

// Ratelimiter returns the shard's outbound command bucket, or nil if
// command ratelimiting is disabled.
func (sh *Shard) Ratelimiter() *ratelimit.Bucket { return sh.ratelimiter }

// Sender returns an owned handle that can inject outbound frames from any
// goroutine.
func (sh *Shard) Sender() MessageSender {
	return MessageSender{outbound: sh.outbound}
}

func (sh *Shard) setStatus(status ConnectionStatus) {
	sh.mu.Lock()
	sh.status = status
	sh.mu.Unlock()
}

// dial opens the socket and, if a session is already present, leaves
// identify/resume to the drive loop's Hello handling.
func (sh *Shard) dial(ctx context.Context) error {
	url := sh.gatewayURL()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return xerrors.Errorf("dial %s: %w", url, err)
	}

	conn.SetReadLimit(websocketReadLimit)

	sh.conn = conn
	sh.decomp = newDecompressor()
	sh.readMessages = make(chan model.Frame, readChannelBuffer)
	sh.readErrors = make(chan error, 1)
	sh.connCtx, sh.connCancel = context.WithCancel(ctx)

	go sh.readLoop(sh.connCtx, conn)

	sh.setStatus(StatusConnecting)

	return nil
}

// gatewayURL resolves the URL the next dial should use, honoring the
// "Resume URL precedence" design note: a caller-configured GatewayURL with
// OverrideResumeURL set always wins over the session's ResumeGatewayURL.
func (sh *Shard) gatewayURL() string {
	sh.mu.RLock()
	session := sh.session
	sh.mu.RUnlock()

	if sh.cfg.OverrideResumeURL || session == nil || session.ResumeGatewayURL == "" {
		return sh.cfg.GatewayURL
	}

	return session.ResumeGatewayURL
}

func (sh *Shard) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			select {
			case sh.readErrors <- err:
			case <-ctx.Done():
			}

			return
		}

		if msgType == websocket.MessageBinary {
			out, ok, decErr := sh.decomp.Feed(data)
			if decErr != nil {
				select {
				case sh.readErrors <- newError(KindCompression, decErr):
				case <-ctx.Done():
				}

				return
			}

			if !ok {
				continue
			}

			data = out
		}

		var frame model.Frame
		if err := frameUnmarshal(data, &frame); err != nil {
			sh.logger.Warn().Err(err).Msg("failed to decode gateway frame")
			continue
		}

		select {
		case sh.readMessages <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// CloseFrame is an outbound close, mirroring the platform's websocket
// close-frame shape.
type CloseFrame struct {
	Code   int
	Reason string
}

// CloseNormal requests a clean disconnect that drops the session.
var CloseNormal = CloseFrame{Code: int(websocket.StatusNormalClosure)}

// CloseResume requests a disconnect the server will treat as resumable.
var CloseResume = CloseFrame{Code: 4000, Reason: "resuming"}

// Close transmits a close frame and returns the session so a caller may
// resume later via Config.Session. The underlying socket is reported
// Disconnected afterwards regardless of resumability.
func (sh *Shard) Close(ctx context.Context, frame CloseFrame) (*model.Session, error) {
	sh.closing.Set()
	defer sh.closing.UnSet()

	if sh.conn != nil {
		if err := sh.conn.Close(websocket.StatusCode(frame.Code), frame.Reason); err != nil {
			return nil, newError(KindSending, err)
		}
	}

	resumable := frame.Code != int(websocket.StatusNormalClosure)
	sh.transitionDisconnected(nil, resumable)

	return sh.Session(), nil
}

func (sh *Shard) transitionDisconnected(code *model.CloseCode, resumable bool) {
	sh.mu.Lock()
	sh.status = StatusDisconnected
	sh.closeCode = code

	if !resumable {
		sh.session = nil
	}

	sh.reconnectAttempts++
	sh.mu.Unlock()

	if sh.connCancel != nil {
		sh.connCancel()
	}
}

func (sh *Shard) transitionFatal(code model.CloseCode) {
	sh.mu.Lock()
	sh.status = StatusFatallyClosed
	sh.closeCode = &code
	sh.mu.Unlock()

	if sh.connCancel != nil {
		sh.connCancel()
	}
}

func (sh *Shard) resetReconnectAttempts() {
	sh.mu.Lock()
	sh.reconnectAttempts = 0
	sh.mu.Unlock()
}

func (sh *Shard) reconnectDelay() time.Duration {
	sh.mu.RLock()
	attempts := sh.reconnectAttempts
	sh.mu.RUnlock()

	capped := attempts
	if capped > 10 {
		capped = 10
	}

	delay := sh.cfg.ReconnectBaseDelay * time.Duration(1<<capped)
	if delay > sh.cfg.ReconnectMaxDelay {
		delay = sh.cfg.ReconnectMaxDelay
	}

	return delay
}

func frameUnmarshal(data []byte, out *model.Frame) error {
	return model.UnmarshalFrame(data, out)
}
