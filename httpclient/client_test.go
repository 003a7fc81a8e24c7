package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDecodesSuccessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels/123", r.URL.Path)
		w.Header().Set(headerRatelimitRemaining, "4")
		w.Header().Set(headerRatelimitReset, "0.1")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"123","name":"general"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	err := c.Do(context.Background(), Request{
		Route:  RouteGetChannel,
		Params: map[string]string{"channel_id": "123"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "general", out.Name)
}

func TestClientRetriesOn429(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set(headerRetryAfter, "0.01")
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	err := c.Do(context.Background(), Request{
		Route:  RouteDeleteMessage,
		Params: map[string]string{"channel_id": "1", "message_id": "2"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientSurfacesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not found`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	err := c.Do(context.Background(), Request{
		Route:  RouteGetGuild,
		Params: map[string]string{"guild_id": "1"},
	}, nil)

	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindStatus, cerr.Kind())
	assert.Equal(t, http.StatusNotFound, cerr.StatusCode())
}

func TestClientSendsAuditReasonHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ban evasion", r.Header.Get(auditLogReasonHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	err := c.Do(context.Background(), Request{
		Route:  RouteRemoveGuildMember,
		Params: map[string]string{"guild_id": "1", "user_id": "2"},
		Reason: "ban evasion",
	}, nil)

	require.NoError(t, err)
}

func TestClientRejectsOversizedReasonBeforeSending(t *testing.T) {
	called := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	oversized := make([]byte, maxReasonLength+1)
	for i := range oversized {
		oversized[i] = 'a'
	}

	err := c.Do(context.Background(), Request{
		Route:  RouteRemoveGuildMember,
		Params: map[string]string{"guild_id": "1", "user_id": "2"},
		Reason: string(oversized),
	}, nil)

	require.Error(t, err)
	assert.False(t, called, "an invalid reason must never reach the server")
}

func TestClientHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "Bot x"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	err := c.Do(ctx, Request{
		Route:  RouteGetGuild,
		Params: map[string]string{"guild_id": "1"},
	}, nil)

	require.Error(t, err)
}
