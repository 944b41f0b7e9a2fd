package memory

import (
	"time"

	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage"
)

type LoggerFn func(string, ...interface{})

// Config
type Config struct {
	LogFn LoggerFn
	ErrFn LoggerFn
}

// Repo is the process-local event store: an insertion-ordered collection of
// events keyed by unique id. It is owned by a single session; mutations are
// expected to run one at a time. Every mutation builds the replacement
// collection in full before swapping it in, so a reader never observes a
// half-applied operation.
type Repo struct {
	events calendar.Events
	log    LoggerFn
	err    LoggerFn
}

// New returns a new event repository.
func New(c Config) *Repo {
	r := Repo{
		events: make(calendar.Events, 0),
		log:    func(string, ...interface{}) {},
		err:    func(string, ...interface{}) {},
	}
	if c.LogFn != nil {
		r.log = c.LogFn
	}
	if c.ErrFn != nil {
		r.err = c.ErrFn
	}
	return &r
}

// AddEvent assigns a fresh id to the draft and appends it; a draft carrying
// a repeat rule is expanded and the whole series is appended. The stored
// root is returned.
func (r *Repo) AddEvent(draft calendar.Event) (calendar.Event, error) {
	ev := draft.Clone()
	ev.ID = calendar.NewID()
	if err := ev.Validate(); err != nil {
		return calendar.Event{}, err
	}

	series, err := calendar.Expand(ev)
	if err != nil {
		return calendar.Event{}, err
	}
	r.events = append(r.events, series...)
	r.log("added %s event %s with %d instances", ev.Role(), ev.ID, len(series))
	return ev.Clone(), nil
}

// UpdateEvent replaces an existing event with the submitted value.
//
// A standalone event is swapped in place, keeping its position. Any series
// member, root or child, collapses the whole series: every event sharing its
// series key is removed and, if the submitted event still carries a rule, a
// freshly expanded series is appended from its data; without a rule only the
// submitted event is appended. There is no per-occurrence edit. A missing id
// is not an error: removal of zero rows is a no-op.
func (r *Repo) UpdateEvent(ev calendar.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	if ev.Role() == calendar.RoleStandalone {
		next := make(calendar.Events, len(r.events))
		copy(next, r.events)
		for i, cur := range next {
			if cur.ID == ev.ID {
				next[i] = ev.Clone()
			}
		}
		r.events = next
		return nil
	}

	key := ev.SeriesKey()
	next := r.removeSeries(r.events, key)
	series, err := calendar.Expand(ev.Clone())
	if err != nil {
		return err
	}
	r.events = append(next, series...)
	r.log("regenerated series %s with %d instances", key, len(series))
	return nil
}

// DeleteEvent removes the event with the given id, or, with cascade set, its
// whole series. A missing id is a silent no-op.
func (r *Repo) DeleteEvent(id string, cascade bool) {
	if !cascade {
		next := make(calendar.Events, 0, len(r.events))
		for _, ev := range r.events {
			if ev.ID != id {
				next = append(next, ev)
			}
		}
		r.events = next
		return
	}

	ev, ok := r.EventByID(id)
	if !ok {
		return
	}
	r.events = r.removeSeries(r.events, ev.SeriesKey())
}

func (r *Repo) removeSeries(from calendar.Events, key string) calendar.Events {
	next := make(calendar.Events, 0, len(from))
	for _, ev := range from {
		if ev.ID == key || ev.ParentID == key {
			continue
		}
		next = append(next, ev)
	}
	return next
}

// DeleteByClient removes every event owned by the client. Cascade entry
// point for the catalog.
func (r *Repo) DeleteByClient(clientID string) {
	next := make(calendar.Events, 0, len(r.events))
	for _, ev := range r.events {
		if ev.ClientID == clientID {
			continue
		}
		next = append(next, ev)
	}
	r.log("client %s cascade removed %d events", clientID, len(r.events)-len(next))
	r.events = next
}

// StripLabel drops the label id from every event's label set, leaving the
// events themselves in place.
func (r *Repo) StripLabel(labelID string) {
	next := make(calendar.Events, len(r.events))
	for i, ev := range r.events {
		cur := ev.Clone()
		labels := make([]string, 0, len(cur.Labels))
		for _, l := range cur.Labels {
			if l != labelID {
				labels = append(labels, l)
			}
		}
		cur.Labels = labels
		next[i] = cur
	}
	r.events = next
}

// Events returns the collection in insertion order.
func (r *Repo) Events() calendar.Events {
	return r.FilterEvents(func(calendar.Event) bool { return true })
}

func (r *Repo) EventByID(id string) (calendar.Event, bool) {
	for _, ev := range r.events {
		if ev.ID == id {
			return ev.Clone(), true
		}
	}
	return calendar.Event{}, false
}

// EventsOn returns every event whose span contains the day, both ends
// inclusive, in insertion order.
func (r *Repo) EventsOn(day time.Time) calendar.Events {
	return r.FilterEvents(func(ev calendar.Event) bool {
		return ev.OnDay(day)
	})
}

// LoadEvents returns the events overlapping the cursor's window.
func (r *Repo) LoadEvents(cursor storage.DateCursor) calendar.Events {
	from, to := cursor.From(), cursor.To()
	return r.FilterEvents(func(ev calendar.Event) bool {
		return ev.Overlaps(from, to)
	})
}

// FilterEvents returns independent copies of the matching events so callers
// can't reach back into the collection.
func (r *Repo) FilterEvents(fn func(calendar.Event) bool) calendar.Events {
	out := make(calendar.Events, 0)
	for _, ev := range r.events {
		if fn(ev) {
			out = append(out, ev.Clone())
		}
	}
	return out
}
