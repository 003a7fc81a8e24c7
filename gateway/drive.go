package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/savsgio/gotils"
	"golang.org/x/xerrors"
	"nhooyr.io/websocket"
)

// NextEvent drives the shard — heartbeats, reconnects, resumes, and
// draining the outbound queue — until a dispatch event is ready, returning
// only typed dispatch events to the caller. Non-dispatch traffic (Hello,
// heartbeat acks, invalid session, reconnect requests) is absorbed
// internally.
func (sh *Shard) NextEvent(ctx context.Context) (model.Event, error) {
	for {
		frame, err := sh.nextRaw(ctx)
		if err != nil {
			return nil, err
		}

		if frame.Close != nil {
			// A close was absorbed (recoverable) or is fatal; either way
			// next_event only ever surfaces fatal closures, so a
			// recoverable one is silently retried by looping again.
			if frame.Close.Code.IsFatal() {
				return nil, newFatalError(frame.Close.Code)
			}

			continue
		}

		if frame.Op != model.OpDispatch {
			continue
		}

		event, err := model.DecodeDispatch(frame)
		if err != nil {
			if errors.Is(err, model.ErrUnknownEventType) {
				continue
			}

			return nil, newError(KindParsingPayload, err)
		}

		return event, nil
	}
}

// NextMessage drives the shard identically to NextEvent but yields every
// raw frame, close frames included, so a caller can observe wire-level
// activity.
func (sh *Shard) NextMessage(ctx context.Context) (model.Frame, error) {
	return sh.nextRaw(ctx)
}

// nextRaw is the shared drive loop. It ensures the shard is connected,
// services the heartbeat timer and outbound queue, and returns the first
// frame available from the wire.
func (sh *Shard) nextRaw(ctx context.Context) (model.Frame, error) {
	for {
		status := sh.Status()

		if status.IsFatallyClosed() {
			return model.Frame{}, newFatalError(*status.CloseCode)
		}

		if status.IsDisconnected() {
			if err := sh.reconnect(ctx); err != nil {
				return model.Frame{}, newError(KindReconnect, err)
			}

			continue
		}

		frame, done, err := sh.pump(ctx)
		if err != nil {
			return model.Frame{}, err
		}

		if done {
			return frame, nil
		}
	}
}

// pump services exactly one readable event off the connection's channels:
// an inbound frame, a read error (closed socket), an outbound frame to
// flush, or a due heartbeat. done is true when a frame is ready to return
// to the caller of nextRaw.
func (sh *Shard) pump(ctx context.Context) (model.Frame, bool, error) {
	heartbeatCh := sh.heartbeatTimerChan()

	select {
	case <-ctx.Done():
		return model.Frame{}, false, ctx.Err()

	case frame := <-sh.readMessages:
		return sh.onFrame(ctx, frame)

	case err := <-sh.readErrors:
		return sh.onReadError(err)

	case out := <-sh.outbound:
		writeErr := sh.writeRaw(ctx, out.payload)
		if out.result != nil {
			out.result <- writeErr
		}

		if writeErr != nil {
			sh.transitionDisconnected(nil, true)

			return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil
		}

		return model.Frame{}, false, nil

	case <-heartbeatCh:
		return sh.onHeartbeatDue(ctx)
	}
}

// heartbeatTimerChan returns a timer channel firing at the shard's next
// heartbeat deadline. The deadline is an absolute instant set once in
// onHello and advanced each time a heartbeat is actually sent, rather than
// a fresh interval-length timer started on every pump call — a fresh
// time.After here would get pushed back by every inbound frame racing it
// in pump's select, starving the heartbeat under continuous traffic and
// leaving the connection zombied.
func (sh *Shard) heartbeatTimerChan() <-chan time.Time {
	sh.heartbeatMu.Lock()
	defer sh.heartbeatMu.Unlock()

	if sh.heartbeatInterval == 0 {
		return nil
	}

	return time.After(time.Until(sh.nextHeartbeatDue))
}

// onFrame handles one inbound frame against the shard's state table.
// done reports whether the caller should receive this frame (Dispatch, or
// a synthesized close observation); false means it was fully absorbed and
// the drive loop should keep pumping.
func (sh *Shard) onFrame(ctx context.Context, frame model.Frame) (model.Frame, bool, error) {
	if frame.Sequence != nil {
		gap := sh.checkSequenceGap(*frame.Sequence)
		if gap {
			sh.transitionDisconnected(nil, true)

			return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil
		}

		sh.seq.Store(*frame.Sequence)
	}

	switch frame.Op {
	case model.OpHello:
		return model.Frame{}, false, sh.onHello(ctx, frame)

	case model.OpHeartbeat:
		return model.Frame{}, false, sh.sendHeartbeat(ctx)

	case model.OpHeartbeatAck:
		sh.recordHeartbeatAck()

		return model.Frame{}, false, nil

	case model.OpReconnect:
		sh.transitionDisconnected(nil, true)

		return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil

	case model.OpInvalidSession:
		resumable := model.UnmarshalBool(frame.Data)
		sh.transitionDisconnected(nil, resumable)

		return model.Frame{Close: &model.CloseInfo{Resumable: resumable}}, true, nil

	case model.OpDispatch:
		return frame, true, nil

	default:
		return model.Frame{}, false, nil
	}
}

func (sh *Shard) checkSequenceGap(newSeq uint64) bool {
	last := sh.seq.Load()

	return last != 0 && newSeq > last+1
}

func (sh *Shard) onReadError(err error) (model.Frame, bool, error) {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		code := model.CloseCode(closeErr.Code)

		if code.IsFatal() {
			sh.transitionFatal(code)

			return model.Frame{Close: &model.CloseInfo{Code: code}}, true, nil
		}

		sh.transitionDisconnected(&code, true)

		return model.Frame{Close: &model.CloseInfo{Code: code, Resumable: true}}, true, nil
	}

	sh.transitionDisconnected(nil, true)

	return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil
}

func (sh *Shard) onHello(ctx context.Context, frame model.Frame) error {
	var hello model.Hello
	if err := model.Unmarshal(frame.Data, &hello); err != nil {
		return newError(KindDeserializing, err)
	}

	interval := time.Duration(hello.HeartbeatIntervalMillis) * time.Millisecond

	now := time.Now()

	sh.heartbeatMu.Lock()
	sh.heartbeatInterval = interval
	sh.lastHeartbeatAck = now
	sh.lastHeartbeatSent = now
	sh.nextHeartbeatDue = now.Add(interval)
	sh.heartbeatMu.Unlock()

	if sh.ratelimiter != nil {
		sh.ratelimiter.SetWindow(commandRatelimitCapacity, interval)
	}

	session := sh.Session()
	if session == nil || session.SessionID == "" {
		sh.setStatus(StatusIdentifying)

		return sh.identify(ctx)
	}

	return sh.resume(ctx)
}

func (sh *Shard) onHeartbeatDue(ctx context.Context) (model.Frame, bool, error) {
	sh.heartbeatMu.Lock()
	unacked := sh.lastHeartbeatSent.After(sh.lastHeartbeatAck)
	sh.heartbeatMu.Unlock()

	if unacked {
		sh.logger.Warn().Msg("gateway did not ack previous heartbeat, treating connection as zombied")
		sh.transitionDisconnected(nil, true)

		return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil
	}

	if err := sh.sendHeartbeat(ctx); err != nil {
		sh.transitionDisconnected(nil, true)

		return model.Frame{Close: &model.CloseInfo{Resumable: true}}, true, nil
	}

	return model.Frame{}, false, nil
}

func (sh *Shard) sendHeartbeat(ctx context.Context) error {
	sh.heartbeatMu.Lock()
	sh.lastHeartbeatSent = time.Now()
	sh.nextHeartbeatDue = sh.lastHeartbeatSent.Add(sh.heartbeatInterval)
	sh.heartbeatMu.Unlock()

	return sh.writeCommand(ctx, model.OpHeartbeat, sh.seq.Load())
}

func (sh *Shard) recordHeartbeatAck() {
	sh.heartbeatMu.Lock()
	now := time.Now()
	sh.lastHeartbeatAck = now
	rtt := now.Sub(sh.lastHeartbeatSent)
	sh.heartbeatMu.Unlock()

	sh.mu.Lock()
	sh.latency = rtt
	sh.mu.Unlock()
}

func (sh *Shard) identify(ctx context.Context) error {
	shard := [2]int{sh.id, sh.shardCount}

	return sh.writeCommand(ctx, model.OpIdentify, model.Identify{
		Token: sh.cfg.Token,
		Properties: model.IdentifyProperties{
			OS:      "linux",
			Browser: "relay-go",
			Device:  "relay-go",
		},
		Compress:       sh.cfg.Compression,
		LargeThreshold: sh.cfg.LargeThreshold,
		Shard:          &shard,
		Presence:       sh.cfg.Presence,
		Intents:        sh.cfg.Intents,
	})
}

func (sh *Shard) resume(ctx context.Context) error {
	session := sh.Session()
	if session == nil {
		return sh.identify(ctx)
	}

	return sh.writeCommand(ctx, model.OpResume, model.Resume{
		Token:     sh.cfg.Token,
		SessionID: session.SessionID,
		Sequence:  sh.seq.Load(),
	})
}

// Command serializes and sends an outbound command, suspending on the
// ratelimiter if enabled.
func (sh *Shard) Command(ctx context.Context, op model.Opcode, payload any) error {
	return sh.writeCommand(ctx, op, payload)
}

func (sh *Shard) writeCommand(ctx context.Context, op model.Opcode, payload any) error {
	data, err := model.MarshalPayload(payload)
	if err != nil {
		return newError(KindSerializing, err)
	}

	frame := model.Frame{Op: op, Data: data}

	raw, err := model.MarshalFrame(frame)
	if err != nil {
		return newError(KindSerializing, err)
	}

	return sh.Send(ctx, raw)
}

// Send transmits an already-framed message, suspending on the ratelimiter
// if enabled.
func (sh *Shard) Send(ctx context.Context, raw []byte) error {
	if sh.ratelimiter != nil {
		if err := sh.ratelimiter.Take(ctx); err != nil {
			return newError(KindSending, err)
		}
	}

	if err := sh.writeRaw(ctx, raw); err != nil {
		sh.transitionDisconnected(nil, true)

		return newError(KindSending, err)
	}

	return nil
}

func (sh *Shard) writeRaw(ctx context.Context, raw []byte) error {
	if sh.conn == nil {
		return xerrors.New("shard has no active connection")
	}

	if sh.closing.IsSet() {
		return xerrors.New("shard is closing")
	}

	// gotils.B2S avoids the allocation a string(raw) conversion would cost
	// on every outbound frame.
	sh.logger.Trace().Str("frame", gotils.B2S(raw)).Msg("gateway: writing frame")

	return sh.conn.Write(ctx, websocket.MessageText, raw)
}

// reconnect backs off, dials the appropriate URL (resume URL if a session
// is held, else the configured gateway URL, subject to
// Config.OverrideResumeURL), and resets state for a fresh Hello handshake.
func (sh *Shard) reconnect(ctx context.Context) error {
	delay := sh.reconnectDelay()

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := sh.dial(ctx); err != nil {
		return err
	}

	sh.resetReconnectAttempts()

	return nil
}
