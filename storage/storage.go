package storage

import (
	"time"

	"git.sr.ht/~mariusor/metis/calendar"
)

// DateCursor marks a point in time and a span around it, used for windowed
// event queries.
type DateCursor struct {
	T time.Time
	D time.Duration
}

func Cursor(st time.Time, d time.Duration) DateCursor {
	return DateCursor{
		T: st,
		D: d,
	}
}

// From and To return the cursor's window in chronological order regardless
// of the span's sign.
func (c DateCursor) From() time.Time {
	if c.D < 0 {
		return c.T.Add(c.D)
	}
	return c.T
}

func (c DateCursor) To() time.Time {
	if c.D < 0 {
		return c.T
	}
	return c.T.Add(c.D)
}

type Loader interface {
	Events() calendar.Events
	EventByID(id string) (calendar.Event, bool)
	EventsOn(day time.Time) calendar.Events
	LoadEvents(cursor DateCursor) calendar.Events
	FilterEvents(fn func(calendar.Event) bool) calendar.Events
}

type Saver interface {
	AddEvent(draft calendar.Event) (calendar.Event, error)
	UpdateEvent(ev calendar.Event) error
	DeleteEvent(id string, cascade bool)
}

type Store interface {
	Loader
	Saver
}

// Cascade is the slice of the event store the catalog needs for referential
// cleanup. Kept separate so catalog behavior is testable with a stub.
type Cascade interface {
	DeleteByClient(clientID string)
	StripLabel(labelID string)
}

type Catalog interface {
	Platforms() []calendar.Platform
	Clients() []calendar.Client
	Labels() []calendar.Label
	PlatformByID(id string) (calendar.Platform, bool)
	ClientByID(id string) (calendar.Client, bool)
	LabelByID(id string) (calendar.Label, bool)
	AddPlatform(name string, icon calendar.Icon) (calendar.Platform, error)
	AddClient(name, color string) calendar.Client
	AddLabel(name, color string) calendar.Label
	DeletePlatform(id string)
	DeleteClient(id string)
	DeleteLabel(id string)
}
