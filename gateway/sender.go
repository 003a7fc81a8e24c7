package gateway

// MessageSender is an owned, cloneable handle that relays raw frames into a
// Shard's outbound queue from any goroutine, without requiring ownership of
// the Shard itself. Wraps the shard's outbound channel so external
// callers never touch shard-internal
// fields.
type MessageSender struct {
	outbound chan<- outboundFrame
}

// outboundFrame is one queued write: an already-framed raw payload plus an
// optional channel for the write outcome. The drive loop writes it as is,
// without passing it through the command ratelimiter.
type outboundFrame struct {
	payload []byte
	result  chan<- error
}

// Send enqueues a raw, already-encoded frame for the drive loop to write.
// It returns once the frame is queued, not once it is written; use
// SendWait to block for the write outcome.
func (s MessageSender) Send(raw []byte) {
	s.outbound <- outboundFrame{payload: raw}
}

// SendWait enqueues a raw frame and blocks until the drive loop reports the
// write outcome.
func (s MessageSender) SendWait(raw []byte) error {
	result := make(chan error, 1)
	s.outbound <- outboundFrame{payload: raw, result: result}

	return <-result
}
