package eventstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"git.home.luguber.info/inful/pybuilder/internal/events"
)

// Event type names as written to the store.
const (
	TypeBuildStarted       = "build_started"
	TypeBuildFinished      = "build_finished"
	TypeArtifactRegistered = "artifact_registered"
	TypeArtifactRejected   = "artifact_rejected"
	TypeRegistryCleared    = "registry_cleared"
)

// Recorder subscribes to the bus and persists build lifecycle events.
// A failed write is logged and dropped; persistence never blocks a build.
type Recorder struct {
	store *Store
	stop  func()
}

// NewRecorder starts recording bus events into store. Call Stop to
// unsubscribe and wait for the recording goroutine to finish.
func NewRecorder(bus *events.Bus, store *Store) *Recorder {
	r := &Recorder{store: store}

	started, unsubStarted := events.Subscribe[events.BuildStarted](bus, 16)
	finished, unsubFinished := events.Subscribe[events.BuildFinished](bus, 16)
	registered, unsubRegistered := events.Subscribe[events.ArtifactRegistered](bus, 16)
	rejected, unsubRejected := events.Subscribe[events.ArtifactRejected](bus, 16)
	cleared, unsubCleared := events.Subscribe[events.RegistryCleared](bus, 16)

	done := make(chan struct{})
	r.stop = func() {
		unsubStarted()
		unsubFinished()
		unsubRegistered()
		unsubRejected()
		unsubCleared()
		<-done
	}

	go func() {
		defer close(done)
		for started != nil || finished != nil || registered != nil || rejected != nil || cleared != nil {
			select {
			case evt, ok := <-started:
				if !ok {
					started = nil
					continue
				}
				r.append(evt.JobID, TypeBuildStarted, evt)
			case evt, ok := <-finished:
				if !ok {
					finished = nil
					continue
				}
				r.append(evt.JobID, TypeBuildFinished, evt)
			case evt, ok := <-registered:
				if !ok {
					registered = nil
					continue
				}
				r.append("", TypeArtifactRegistered, evt)
			case evt, ok := <-rejected:
				if !ok {
					rejected = nil
					continue
				}
				r.append("", TypeArtifactRejected, evt)
			case evt, ok := <-cleared:
				if !ok {
					cleared = nil
					continue
				}
				r.append("", TypeRegistryCleared, evt)
			}
		}
	}()

	return r
}

func (r *Recorder) append(jobID, eventType string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Warn("Dropping unmarshalable build event", "type", eventType, "error", err)
		return
	}
	at := eventTime(evt)
	if err := r.store.Append(context.Background(), jobID, eventType, at, payload); err != nil {
		slog.Warn("Failed to persist build event", "type", eventType, "error", err)
	}
}

// Stop unsubscribes from the bus and waits for in-flight writes.
func (r *Recorder) Stop() {
	r.stop()
}
