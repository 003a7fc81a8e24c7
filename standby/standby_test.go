package standby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForGuildEventMatches(t *testing.T) {
	s := New()
	guildID := model.NewID[model.GuildMarker](1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan model.Event, 1)

	go func() {
		ev, err := s.WaitFor(ctx, guildID, func(ev model.Event) bool {
			_, ok := ev.(model.RoleCreate)

			return ok
		})
		if err == nil {
			done <- ev
		}
	}()

	waitForRegistration(t, &s.mu, func() bool { return len(s.guilds[guildID]) == 1 })

	results := s.Process(model.RoleCreate{GuildID: guildID})
	assert.Equal(t, 1, results.Fulfilled())

	select {
	case ev := <-done:
		_, ok := ev.(model.RoleCreate)
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("WaitFor never resolved")
	}

	assert.Empty(t, s.guilds[guildID], "a fulfilled guild key must be compacted away")
}

func TestProcessOverEmptyBagsIsNoop(t *testing.T) {
	s := New()

	results := s.Process(model.RoleCreate{GuildID: model.NewID[model.GuildMarker](1)})
	assert.Equal(t, 0, results.Matched())
	assert.Equal(t, 0, results.Dropped())
}

func TestWaitForCancelViaContext(t *testing.T) {
	s := New()
	guildID := model.NewID[model.GuildMarker](1)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)

	go func() {
		_, err := s.WaitFor(ctx, guildID, func(model.Event) bool { return true })
		errCh <- err
	}()

	waitForRegistration(t, &s.mu, func() bool { return len(s.guilds[guildID]) == 1 })

	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitFor never observed cancellation")
	}

	results := s.Process(model.RoleCreate{GuildID: guildID})
	assert.Equal(t, 1, results.Dropped(), "the canceled waiter must be reported dropped on the next Process")
}

func TestWaitForMessageScopedByChannel(t *testing.T) {
	s := New()
	channelA := model.NewID[model.ChannelMarker](1)
	channelB := model.NewID[model.ChannelMarker](2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan model.MessageCreate, 1)

	go func() {
		mc, err := s.WaitForMessage(ctx, channelA, func(model.MessageCreate) bool { return true })
		if err == nil {
			done <- mc
		}
	}()

	waitForRegistration(t, &s.mu, func() bool { return len(s.messages[channelA]) == 1 })

	s.Process(model.MessageCreate{Message: model.Message{ChannelID: channelB}})
	select {
	case <-done:
		t.Fatal("a message in a different channel must not match")
	case <-time.After(50 * time.Millisecond):
	}

	results := s.Process(model.MessageCreate{Message: model.Message{ChannelID: channelA}})
	assert.Equal(t, 1, results.Fulfilled())

	select {
	case mc := <-done:
		assert.Equal(t, channelA, mc.ChannelID)
	case <-time.After(time.Second):
		t.Fatal("WaitForMessage never resolved")
	}
}

func TestWaitForReactionStreamDeliversRepeatedly(t *testing.T) {
	s := New()
	messageID := model.NewID[model.MessageMarker](1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := s.WaitForReactionStream(ctx, messageID, func(model.ReactionAdd) bool { return true })

	waitForRegistration(t, &s.mu, func() bool { return len(s.reactions[messageID]) == 1 })

	for i := 0; i < 3; i++ {
		results := s.Process(model.ReactionAdd{MessageID: messageID})
		assert.Equal(t, 1, results.Sent())
	}

	for i := 0; i < 3; i++ {
		select {
		case <-stream:
		case <-time.After(time.Second):
			t.Fatalf("stream did not deliver reaction %d", i)
		}
	}

	assert.Len(t, s.reactions[messageID], 1, "a stream waiter is retained across matches")
}

func TestWaitForComponentRequiresMessageComponentType(t *testing.T) {
	s := New()
	messageID := model.NewID[model.MessageMarker](1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan model.InteractionCreate, 1)

	go func() {
		ic, err := s.WaitForComponent(ctx, messageID, func(model.InteractionCreate) bool { return true })
		if err == nil {
			done <- ic
		}
	}()

	waitForRegistration(t, &s.mu, func() bool { return len(s.components[messageID]) == 1 })

	// type 2 (APPLICATION_COMMAND) on the same message must not match.
	s.Process(model.InteractionCreate{Type: 2, Message: &model.Message{ID: messageID}})

	select {
	case <-done:
		t.Fatal("a non-component interaction must not satisfy WaitForComponent")
	case <-time.After(50 * time.Millisecond):
	}

	s.Process(model.InteractionCreate{Type: 3, Message: &model.Message{ID: messageID}})

	select {
	case ic := <-done:
		assert.True(t, ic.IsMessageComponent())
	case <-time.After(time.Second):
		t.Fatal("WaitForComponent never resolved")
	}
}

func TestWaitForEventIsUnscopedByGuildOrChannel(t *testing.T) {
	s := New()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan model.Event, 1)

	go func() {
		ev, err := s.WaitForEvent(ctx, func(ev model.Event) bool {
			_, ok := ev.(model.Resumed)

			return ok
		})
		if err == nil {
			done <- ev
		}
	}()

	waitForEventRegistration(t, s)

	s.Process(model.RoleCreate{GuildID: model.NewID[model.GuildMarker](1)})
	select {
	case <-done:
		t.Fatal("an unrelated event must not satisfy the predicate")
	case <-time.After(50 * time.Millisecond):
	}

	s.Process(model.Resumed{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForEvent never resolved")
	}
}

func TestProcessResultsAggregateAcrossBags(t *testing.T) {
	s := New()
	guildID := model.NewID[model.GuildMarker](1)
	channelID := model.NewID[model.ChannelMarker](2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = s.WaitForStream(ctx, guildID, func(model.Event) bool { return true })
	_ = s.WaitForMessageStream(ctx, channelID, func(model.MessageCreate) bool { return true })
	go func() { _, _ = s.WaitForEvent(ctx, func(model.Event) bool { return false }) }()

	waitForRegistration(t, &s.mu, func() bool {
		return len(s.guilds[guildID]) == 1 && len(s.messages[channelID]) == 1 && len(s.events) == 1
	})

	results := s.Process(model.MessageCreate{Message: model.Message{ChannelID: channelID, GuildID: guildID}})
	assert.Equal(t, 2, results.Sent(), "both the guild stream and the message stream must be sent this event")
}

func waitForRegistration(t *testing.T, mu *sync.Mutex, check func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		ok := check()
		mu.Unlock()

		if ok {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatal("waiter never registered")
}

func waitForEventRegistration(t *testing.T, s *Standby) {
	t.Helper()
	waitForRegistration(t, &s.mu, func() bool { return len(s.events) == 1 })
}
