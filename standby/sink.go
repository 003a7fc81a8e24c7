package standby

import "github.com/relaywire/relay-go/model"

// sink is the send half of a bystander: either a one-shot future channel
// (buffer 1, sent to at most once, never closed) or a stream channel
// (buffered, left open across many sends). Mirrors twilight-standby's Sender<E> enum, with
// Rust's channel-closed detection replaced by checking ctx.Done() — Go has
// no Drop, so cancellation is explicit via context instead of implicit via
// the receiver going out of scope.
type sink struct {
	future chan<- model.Event
	stream chan<- model.Event
	done   <-chan struct{}
}

func futureSink(ch chan<- model.Event, done <-chan struct{}) sink {
	return sink{future: ch, done: done}
}

func streamSink(ch chan<- model.Event, done <-chan struct{}) sink {
	return sink{stream: ch, done: done}
}

func (s sink) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// send delivers ev to the sink. For a future sink it always reports the
// bystander complete (matching the Rust impl, which discards the send
// error and removes the bystander regardless of whether the receiver was
// still listening). For a stream sink, a full buffer is treated the same
// as a dropped receiver: there is no unbounded channel in Go, and a
// waiter that cannot keep up with its own subscription is indistinguishable
// from one that has stopped reading.
func (s sink) send(ev model.Event) processStatus {
	if s.future != nil {
		select {
		case s.future <- ev:
		default:
		}

		return statusSentFuture
	}

	select {
	case s.stream <- ev:
		return statusSentStream
	default:
		return statusDropped
	}
}

// bystander pairs a predicate with a sink. func reports whether ev matches
// what the caller is waiting for.
type bystander struct {
	pred func(model.Event) bool
	sink sink
}

// process tests one bystander against one event, mirroring
// Standby::bystander_process: a closed receiver short-circuits to Dropped,
// a non-matching predicate is a Skip (bystander retained), and a match
// sends the event and returns the sink's completion status.
func (b bystander) process(ev model.Event) processStatus {
	if b.sink.closed() {
		return statusDropped
	}

	if !b.pred(ev) {
		return statusSkip
	}

	return b.sink.send(ev)
}
