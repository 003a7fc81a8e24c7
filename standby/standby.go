// Package standby lets callers await a dispatch event matching a predicate
// without threading a case into the main event loop: register a waiter
// keyed by guild/channel/message (or unscoped), then call Process for
// every event the application's dispatch loop receives.
package standby

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/relaywire/relay-go/model"
)

// streamBufferSize bounds a stream waiter's backlog. Go has no unbounded
// channel; a full buffer is treated the same as a receiver that stopped
// reading, matching how a slow consumer of an unbounded mpsc would still
// eventually fall behind and miss its deadline.
const streamBufferSize = 64

// Standby dispatches events to registered waiters. The zero value is not
// usable; construct with New.
type Standby struct {
	mu sync.Mutex

	guilds     map[model.GuildID][]bystander
	messages   map[model.ChannelID][]bystander
	reactions  map[model.MessageID][]bystander
	components map[model.MessageID][]bystander
	events     map[uint64]bystander

	eventSeq uint64
}

// New returns a Standby ready to register waiters and accept Process calls.
func New() *Standby {
	return &Standby{
		guilds:     make(map[model.GuildID][]bystander),
		messages:   make(map[model.ChannelID][]bystander),
		reactions:  make(map[model.MessageID][]bystander),
		components: make(map[model.MessageID][]bystander),
		events:     make(map[uint64]bystander),
	}
}

// Process delivers an event to every waiter it could match, in the order:
// channel-keyed message bag, message-keyed reaction bag, message-keyed
// component bag, guild-keyed bag, then the unscoped bag. It must be called
// once per event by the application's dispatch loop for waiters to ever
// resolve.
func (s *Standby) Process(ev model.Event) ProcessResults {
	var results ProcessResults

	switch e := ev.(type) {
	case model.MessageCreate:
		results.addWith(processKeyed(&s.mu, s.messages, e.ChannelID, ev))
	case model.ReactionAdd:
		results.addWith(processKeyed(&s.mu, s.reactions, e.MessageID, ev))
	case model.InteractionCreate:
		if e.IsMessageComponent() {
			results.addWith(processKeyed(&s.mu, s.components, e.Message.ID, ev))
		}
	}

	if scoped, ok := ev.(model.GuildScoped); ok && scoped.EventGuildID() != 0 {
		results.addWith(processKeyed(&s.mu, s.guilds, scoped.EventGuildID(), ev))
	}

	results.addWith(s.processUnscoped(ev))

	return results
}

// processKeyed tests every bystander registered under key, compacting the
// list in place and dropping the key entirely once its list empties.
// Mirrors Standby::process_specific_event, translated from DashMap's
// per-entry lock to one mutex guarding every bag (Process runs a short,
// synchronous critical section — no suspension happens inside it, so a
// single lock costs nothing a per-key lock would have saved).
func processKeyed[K comparable](mu *sync.Mutex, bag map[K][]bystander, key K, ev model.Event) ProcessResults {
	mu.Lock()
	defer mu.Unlock()

	list, ok := bag[key]
	if !ok {
		return ProcessResults{}
	}

	var results ProcessResults

	kept := list[:0]

	for _, b := range list {
		status := b.process(ev)
		results.handle(status)

		if !status.isComplete() {
			kept = append(kept, b)
		}
	}

	if len(kept) == 0 {
		delete(bag, key)
	} else {
		bag[key] = kept
	}

	return results
}

func (s *Standby) processUnscoped(ev model.Event) ProcessResults {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results ProcessResults

	for id, b := range s.events {
		status := b.process(ev)
		results.handle(status)

		if status.isComplete() {
			delete(s.events, id)
		}
	}

	return results
}

func insertKeyed[K comparable](mu *sync.Mutex, bag map[K][]bystander, key K, b bystander) {
	mu.Lock()
	defer mu.Unlock()

	bag[key] = append(bag[key], b)
}

func (s *Standby) insertUnscoped(b bystander) {
	id := atomic.AddUint64(&s.eventSeq, 1) - 1

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[id] = b
}

// waitKeyed registers a one-shot waiter under key and blocks until it
// matches, the context is canceled, or the Standby itself has no further
// way to deliver (the latter can't happen here since Standby has no
// explicit shutdown — callers rely on ctx for cancellation, same as every
// other blocking call in this module).
func waitKeyed[K comparable](ctx context.Context, mu *sync.Mutex, bag map[K][]bystander, key K, pred func(model.Event) bool) (model.Event, error) {
	ch := make(chan model.Event, 1)
	insertKeyed(mu, bag, key, bystander{pred: pred, sink: futureSink(ch, ctx.Done())})

	select {
	case ev := <-ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func streamKeyed[K comparable](ctx context.Context, mu *sync.Mutex, bag map[K][]bystander, key K, pred func(model.Event) bool) <-chan model.Event {
	ch := make(chan model.Event, streamBufferSize)
	insertKeyed(mu, bag, key, bystander{pred: pred, sink: streamSink(ch, ctx.Done())})

	return ch
}

// WaitFor blocks until an event in guildID matches pred.
func (s *Standby) WaitFor(ctx context.Context, guildID model.GuildID, pred func(model.Event) bool) (model.Event, error) {
	return waitKeyed(ctx, &s.mu, s.guilds, guildID, pred)
}

// WaitForStream streams every event in guildID matching pred until ctx is
// canceled.
func (s *Standby) WaitForStream(ctx context.Context, guildID model.GuildID, pred func(model.Event) bool) <-chan model.Event {
	return streamKeyed(ctx, &s.mu, s.guilds, guildID, pred)
}

// WaitForEvent blocks until any event (regardless of guild or channel)
// matches pred.
func (s *Standby) WaitForEvent(ctx context.Context, pred func(model.Event) bool) (model.Event, error) {
	ch := make(chan model.Event, 1)
	s.insertUnscoped(bystander{pred: pred, sink: futureSink(ch, ctx.Done())})

	select {
	case ev := <-ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WaitForEventStream streams every event matching pred until ctx is
// canceled.
func (s *Standby) WaitForEventStream(ctx context.Context, pred func(model.Event) bool) <-chan model.Event {
	ch := make(chan model.Event, streamBufferSize)
	s.insertUnscoped(bystander{pred: pred, sink: streamSink(ch, ctx.Done())})

	return ch
}

// WaitForMessage blocks until a MessageCreate in channelID matches pred.
func (s *Standby) WaitForMessage(ctx context.Context, channelID model.ChannelID, pred func(model.MessageCreate) bool) (model.MessageCreate, error) {
	ev, err := waitKeyed(ctx, &s.mu, s.messages, channelID, adaptMessage(pred))
	if err != nil {
		return model.MessageCreate{}, err
	}

	return ev.(model.MessageCreate), nil
}

// WaitForMessageStream streams every MessageCreate in channelID matching
// pred until ctx is canceled.
func (s *Standby) WaitForMessageStream(ctx context.Context, channelID model.ChannelID, pred func(model.MessageCreate) bool) <-chan model.MessageCreate {
	return adaptStream(ctx, streamKeyed(ctx, &s.mu, s.messages, channelID, adaptMessage(pred)), func(ev model.Event) model.MessageCreate {
		return ev.(model.MessageCreate)
	})
}

// WaitForReaction blocks until a ReactionAdd on messageID matches pred.
func (s *Standby) WaitForReaction(ctx context.Context, messageID model.MessageID, pred func(model.ReactionAdd) bool) (model.ReactionAdd, error) {
	ev, err := waitKeyed(ctx, &s.mu, s.reactions, messageID, adaptReaction(pred))
	if err != nil {
		return model.ReactionAdd{}, err
	}

	return ev.(model.ReactionAdd), nil
}

// WaitForReactionStream streams every ReactionAdd on messageID matching
// pred until ctx is canceled.
func (s *Standby) WaitForReactionStream(ctx context.Context, messageID model.MessageID, pred func(model.ReactionAdd) bool) <-chan model.ReactionAdd {
	return adaptStream(ctx, streamKeyed(ctx, &s.mu, s.reactions, messageID, adaptReaction(pred)), func(ev model.Event) model.ReactionAdd {
		return ev.(model.ReactionAdd)
	})
}

// WaitForComponent blocks until a message-component interaction on
// messageID matches pred.
func (s *Standby) WaitForComponent(ctx context.Context, messageID model.MessageID, pred func(model.InteractionCreate) bool) (model.InteractionCreate, error) {
	ev, err := waitKeyed(ctx, &s.mu, s.components, messageID, adaptComponent(pred))
	if err != nil {
		return model.InteractionCreate{}, err
	}

	return ev.(model.InteractionCreate), nil
}

// WaitForComponentStream streams every message-component interaction on
// messageID matching pred until ctx is canceled.
func (s *Standby) WaitForComponentStream(ctx context.Context, messageID model.MessageID, pred func(model.InteractionCreate) bool) <-chan model.InteractionCreate {
	return adaptStream(ctx, streamKeyed(ctx, &s.mu, s.components, messageID, adaptComponent(pred)), func(ev model.Event) model.InteractionCreate {
		return ev.(model.InteractionCreate)
	})
}

func adaptMessage(pred func(model.MessageCreate) bool) func(model.Event) bool {
	return func(ev model.Event) bool {
		mc, ok := ev.(model.MessageCreate)

		return ok && pred(mc)
	}
}

func adaptReaction(pred func(model.ReactionAdd) bool) func(model.Event) bool {
	return func(ev model.Event) bool {
		ra, ok := ev.(model.ReactionAdd)

		return ok && pred(ra)
	}
}

func adaptComponent(pred func(model.InteractionCreate) bool) func(model.Event) bool {
	return func(ev model.Event) bool {
		ic, ok := ev.(model.InteractionCreate)

		return ok && ic.IsMessageComponent() && pred(ic)
	}
}

// adaptStream relays a generic event stream into a typed channel. The
// source channel is never closed by the sender side (Standby has no
// shutdown of its own), so the relay goroutine instead exits — and closes
// out — when ctx is canceled, the same cancellation signal that makes
// Process stop delivering to this waiter.
func adaptStream[T any](ctx context.Context, src <-chan model.Event, convert func(model.Event) T) <-chan T {
	out := make(chan T, streamBufferSize)

	go func() {
		defer close(out)

		for {
			select {
			case ev := <-src:
				select {
				case out <- convert(ev):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
