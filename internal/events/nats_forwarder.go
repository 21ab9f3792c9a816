package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NATSForwarder republishes build lifecycle events onto a NATS subject so
// host-IDE processes (or anything else) can observe builds without linking
// against this module. It is optional: the daemon only starts one when a
// NATS URL is configured.
type NATSForwarder struct {
	conn    *nats.Conn
	subject string
	stop    func()
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// NewNATSForwarder connects to NATS and subscribes to the bus's build and
// artifact events. Call Stop to unsubscribe and drain the connection.
func NewNATSForwarder(bus *Bus, url, subject string) (*NATSForwarder, error) {
	conn, err := nats.Connect(url, nats.Name("pybuilder"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	f := &NATSForwarder{conn: conn, subject: subject}

	started, unsubStarted := Subscribe[BuildStarted](bus, 16)
	finished, unsubFinished := Subscribe[BuildFinished](bus, 16)
	registered, unsubRegistered := Subscribe[ArtifactRegistered](bus, 16)
	rejected, unsubRejected := Subscribe[ArtifactRejected](bus, 16)

	done := make(chan struct{})
	f.stop = func() {
		unsubStarted()
		unsubFinished()
		unsubRegistered()
		unsubRejected()
		<-done
	}

	go func() {
		defer close(done)
		for started != nil || finished != nil || registered != nil || rejected != nil {
			select {
			case evt, ok := <-started:
				if !ok {
					started = nil
					continue
				}
				f.publish("build_started", evt)
			case evt, ok := <-finished:
				if !ok {
					finished = nil
					continue
				}
				f.publish("build_finished", evt)
			case evt, ok := <-registered:
				if !ok {
					registered = nil
					continue
				}
				f.publish("artifact_registered", evt)
			case evt, ok := <-rejected:
				if !ok {
					rejected = nil
					continue
				}
				f.publish("artifact_rejected", evt)
			}
		}
	}()

	slog.Info("NATS event forwarding enabled", "url", url, "subject", subject)
	return f, nil
}

func (f *NATSForwarder) publish(eventType string, payload any) {
	data, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		slog.Warn("Failed to encode event for NATS", "type", eventType, "error", err)
		return
	}
	if err := f.conn.Publish(f.subject, data); err != nil {
		slog.Warn("Failed to publish event to NATS", "type", eventType, "error", err)
	}
}

// Stop unsubscribes from the bus and drains the NATS connection.
func (f *NATSForwarder) Stop(ctx context.Context) {
	f.stop()
	drained := make(chan struct{})
	go func() {
		_ = f.conn.Drain()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		f.conn.Close()
	}
}
