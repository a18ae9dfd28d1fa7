// Package stream maintains the live server-sent-event connection for one job
// application and feeds parsed snapshots into the snapshot store. It is the
// store's only writer.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/r3labs/sse/v2"
	"github.com/tidwall/gjson"

	"jobtailor/internal/api"
	"jobtailor/internal/model"
	"jobtailor/internal/store"
)

// Named event types the backend emits on the stream.
const (
	EventSnapshot    = "application.snapshot"
	EventStreamError = "stream.error"
)

type Client struct {
	store *store.SnapshotStore
	url   string

	cancel context.CancelFunc
	done   chan struct{}

	// lastEventID implements duplicate-delivery protection on reconnect
	// replay. Only touched from the subscription goroutine.
	lastEventID string
}

// New builds a stream client scoped to one application id. The bearer token
// rides in the URL path because SSE connections cannot carry headers from
// browser-equivalent clients.
func New(baseURL, applicationID, token string, st *store.SnapshotStore) *Client {
	c := &Client{store: st}
	if applicationID == "" || token == "" {
		return c
	}
	c.url = strings.TrimRight(baseURL, "/") + api.StreamPath(applicationID, token)
	return c
}

// Open starts the subscription. It is a no-op when the application id or
// token was absent. Transport-level drops are retried by the SSE client's
// own backoff; an explicit stream.error message is terminal.
func (c *Client) Open(ctx context.Context) {
	if c.url == "" {
		log.Println("stream: missing application id or token, not connecting")
		return
	}
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	client := sse.NewClient(c.url)
	client.OnConnect(func(*sse.Client) {
		c.store.SetConnected(true)
		c.store.ClearError()
	})
	client.OnDisconnect(func(*sse.Client) {
		// Transient: the client reconnects on its own.
		c.store.SetConnected(false)
	})

	go func() {
		defer close(c.done)
		if err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			c.handle(msg, cancel)
		}); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("stream: subscription ended: %v", err)
		}
		c.store.SetConnected(false)
	}()
}

// Close tears the connection down and waits for the subscription goroutine.
// Safe to call when Open never connected.
func (c *Client) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
}

func (c *Client) handle(msg *sse.Event, cancel context.CancelFunc) {
	switch string(msg.Event) {
	case EventSnapshot:
		id := string(msg.ID)
		if id != "" && id == c.lastEventID {
			return
		}
		c.lastEventID = id

		var snapshot model.JobApplicationSnapshot
		if err := json.Unmarshal(msg.Data, &snapshot); err != nil {
			c.store.SetError(fmt.Errorf("parse snapshot: %w", err))
			return
		}
		c.store.UpdateSnapshot(&snapshot)

	case EventStreamError:
		message := gjson.GetBytes(msg.Data, "message").String()
		if message == "" {
			message = "stream error"
		}
		c.store.SetError(errors.New(message))
		cancel()
	}
}
