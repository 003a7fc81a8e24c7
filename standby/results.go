package standby

// ProcessResults reports how many bystanders Process touched: receivers
// gone (dropped), one-shot waiters fulfilled, and stream sends that
// succeeded. Grounded on twilight-standby's ProcessResults, translated
// from an atomic counter struct to a plain value accumulated per call.
type ProcessResults struct {
	dropped   int
	fulfilled int
	sent      int
}

// Dropped returns the number of bystanders removed because their receiver
// had already gone away.
func (r ProcessResults) Dropped() int { return r.dropped }

// Fulfilled returns the number of one-shot waiters that were sent an event.
func (r ProcessResults) Fulfilled() int { return r.fulfilled }

// Sent returns the number of stream waiters that were sent an event.
func (r ProcessResults) Sent() int { return r.sent }

// Matched returns Fulfilled()+Sent(), the total number of waiters that
// received this event.
func (r ProcessResults) Matched() int { return r.fulfilled + r.sent }

func (r *ProcessResults) addWith(other ProcessResults) {
	r.dropped += other.dropped
	r.fulfilled += other.fulfilled
	r.sent += other.sent
}

// processStatus is the outcome of testing one bystander against one event.
type processStatus int

const (
	statusSkip processStatus = iota
	statusAlreadyComplete
	statusDropped
	statusSentFuture
	statusSentStream
)

func (s processStatus) isComplete() bool {
	return s == statusAlreadyComplete || s == statusDropped || s == statusSentFuture
}

func (r *ProcessResults) handle(status processStatus) {
	switch status {
	case statusDropped:
		r.dropped++
	case statusSentFuture:
		r.fulfilled++
	case statusSentStream:
		r.sent++
	case statusAlreadyComplete, statusSkip:
	}
}
