package eventstore

import (
	"time"

	"git.home.luguber.info/inful/pybuilder/internal/events"
)

// eventTime picks the event's own timestamp where it carries one.
func eventTime(evt any) time.Time {
	switch e := evt.(type) {
	case events.BuildStarted:
		return e.StartedAt
	case events.BuildFinished:
		return e.FinishedAt
	case events.RegistryCleared:
		return e.ClearedAt
	default:
		return time.Now()
	}
}
