package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtailor/internal/store"
)

func snapshotEvent(id, data string) *sse.Event {
	return &sse.Event{
		ID:    []byte(id),
		Event: []byte(EventSnapshot),
		Data:  []byte(data),
	}
}

func TestHandleSnapshotUpdatesStore(t *testing.T) {
	st := store.New()
	c := &Client{store: st}

	c.handle(snapshotEvent("1", `{"id":"app-1","job_title":"Backend Engineer","events":[]}`), func() {})

	require.NotNil(t, st.Snapshot())
	assert.Equal(t, "app-1", st.Snapshot().ID)
	assert.Equal(t, "Backend Engineer", st.Snapshot().JobTitle)
}

func TestHandleDropsDuplicateEventID(t *testing.T) {
	st := store.New()
	c := &Client{store: st}

	c.handle(snapshotEvent("7", `{"id":"app-1","job_title":"first","events":[]}`), func() {})
	// Reconnect replay delivers the same event id again with stale data.
	c.handle(snapshotEvent("7", `{"id":"app-1","job_title":"replayed","events":[]}`), func() {})

	assert.Equal(t, "first", st.Snapshot().JobTitle)

	c.handle(snapshotEvent("8", `{"id":"app-1","job_title":"second","events":[]}`), func() {})
	assert.Equal(t, "second", st.Snapshot().JobTitle)
}

func TestHandleEmptyEventIDNeverDeduplicates(t *testing.T) {
	st := store.New()
	c := &Client{store: st}

	c.handle(snapshotEvent("", `{"id":"app-1","job_title":"first","events":[]}`), func() {})
	c.handle(snapshotEvent("", `{"id":"app-1","job_title":"second","events":[]}`), func() {})

	assert.Equal(t, "second", st.Snapshot().JobTitle)
}

func TestHandleMalformedSnapshotKeepsConnectionAlive(t *testing.T) {
	st := store.New()
	c := &Client{store: st}
	cancelled := false

	c.handle(snapshotEvent("1", `{"id":"app-1","events":[]}`), func() { cancelled = true })
	c.handle(snapshotEvent("2", `{not json`), func() { cancelled = true })

	assert.False(t, cancelled)
	assert.Error(t, st.Err())
	// The previous snapshot survives a parse failure.
	assert.Equal(t, "app-1", st.Snapshot().ID)

	c.handle(snapshotEvent("3", `{"id":"app-1","job_title":"recovered","events":[]}`), func() { cancelled = true })
	assert.Equal(t, "recovered", st.Snapshot().JobTitle)
}

func TestHandleStreamErrorIsTerminal(t *testing.T) {
	st := store.New()
	c := &Client{store: st}
	cancelled := false

	errEvent := &sse.Event{
		Event: []byte(EventStreamError),
		Data:  []byte(`{"message":"application not found"}`),
	}
	c.handle(errEvent, func() { cancelled = true })

	assert.True(t, cancelled)
	assert.EqualError(t, st.Err(), "application not found")
}

func TestHandleStreamErrorWithoutMessage(t *testing.T) {
	st := store.New()
	c := &Client{store: st}

	errEvent := &sse.Event{
		Event: []byte(EventStreamError),
		Data:  []byte(`{}`),
	}
	c.handle(errEvent, func() {})

	assert.EqualError(t, st.Err(), "stream error")
}

func TestOpenWithoutCredentialsIsNoOp(t *testing.T) {
	st := store.New()
	c := New("http://localhost:8000", "", "", st)

	c.Open(context.Background())
	c.Close()

	assert.False(t, st.Connected())
}

func TestOpenDeliversSnapshotsEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/app-1/stream/token-1", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")

		fmt.Fprintf(w, "id: 1\nevent: %s\ndata: %s\n\n",
			EventSnapshot, `{"id":"app-1","job_title":"Backend Engineer","events":[]}`)
		w.(http.Flusher).Flush()

		<-r.Context().Done()
	}))
	defer server.Close()

	st := store.New()
	updates, cancelWatch := st.Watch()
	defer cancelWatch()

	c := New(server.URL, "app-1", "token-1", st)
	c.Open(context.Background())
	defer c.Close()

	deadline := time.After(5 * time.Second)
	for st.Snapshot() == nil {
		select {
		case <-updates:
		case <-deadline:
			t.Fatal("snapshot never arrived")
		}
	}

	assert.Equal(t, "app-1", st.Snapshot().ID)
	assert.True(t, st.Connected())
}
