package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	model "tender-tracker/internal/models"
)

const eventsStream = "TENDER_EVENTS"

// JetStream publishes every domain event to a durable NATS stream so other
// systems can follow the tender timeline without polling the API.
type JetStream struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// ConnectJetStream dials NATS, obtains a JetStream context and makes sure
// the events stream exists.
func ConnectJetStream(url string) (*JetStream, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}
	if err := ensureStream(js); err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}
	return &JetStream{conn: conn, js: js}, nil
}

// ConnectJetStreamWithRetry keeps dialing until the timeout passes, which
// covers the broker coming up alongside the service.
func ConnectJetStreamWithRetry(url string, timeout time.Duration) (*JetStream, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ConnectJetStream(url)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("connect jetstream timeout after %s: %w", timeout, lastErr)
}

func ensureStream(js nats.JetStreamContext) error {
	if _, err := js.StreamInfo(eventsStream); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			return err
		}
		if _, addErr := js.AddStream(&nats.StreamConfig{
			Name:      eventsStream,
			Subjects:  []string{"tender.event.>"},
			Retention: nats.LimitsPolicy,
			Storage:   nats.FileStorage,
			Replicas:  1,
		}); addErr != nil {
			return addErr
		}
	}
	return nil
}

func (j *JetStream) Dispatch(_ context.Context, ev model.DomainEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: failed to encode event %s: %w", ev.EventID, err)
	}
	subject := "tender.event." + string(ev.Kind)
	if _, err := j.js.Publish(subject, payload); err != nil {
		return fmt.Errorf("notify: failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains in-flight messages before closing the connection.
func (j *JetStream) Close() {
	if j == nil || j.conn == nil {
		return
	}
	_ = j.conn.Drain()
	j.conn.Close()
}
