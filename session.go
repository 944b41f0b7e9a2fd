package metis

import (
	"fmt"
	"time"

	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage/memory"
)

// Session is the single mutable unit of planner state for one application
// run: the event store, the catalog and the active filter selection. All
// consumers receive it by handle; there are no package-level singletons and
// no teardown, process exit is teardown.
type Session struct {
	Events  *memory.Repo
	Catalog *memory.Catalog
	Filters calendar.Filters
}

// NewSession wires the stores together, with the catalog cascading into the
// event store, and loads the seed.
func NewSession(seed Seed, c memory.Config) (*Session, error) {
	events := memory.New(c)
	catalog := memory.NewCatalog(c, events)
	s := Session{
		Events:  events,
		Catalog: catalog,
	}

	for _, p := range seed.Platforms {
		if _, err := catalog.AddPlatform(p.Name, calendar.Icon(p.Icon)); err != nil {
			return nil, fmt.Errorf("unable to seed platform %q: %w", p.Name, err)
		}
	}
	for _, cl := range seed.Clients {
		catalog.AddClient(cl.Name, cl.Color)
	}
	for _, l := range seed.Labels {
		catalog.AddLabel(l.Name, l.Color)
	}
	for _, ev := range seed.Events {
		draft, err := s.draftFromSeed(ev)
		if err != nil {
			return nil, fmt.Errorf("unable to seed event %q: %w", ev.Title, err)
		}
		if _, err := events.AddEvent(draft); err != nil {
			return nil, fmt.Errorf("unable to seed event %q: %w", ev.Title, err)
		}
	}
	return &s, nil
}

// Visible returns the event collection with the active filters applied, in
// store order.
func (s *Session) Visible() calendar.Events {
	return s.Events.FilterEvents(s.Filters.Matches)
}

// VisibleOn returns the filtered events whose span contains the day. This is
// what a month-grid day cell consumes.
func (s *Session) VisibleOn(day time.Time) calendar.Events {
	return s.Events.FilterEvents(func(ev calendar.Event) bool {
		return ev.OnDay(day) && s.Filters.Matches(ev)
	})
}

func (s *Session) draftFromSeed(ev SeedEvent) (calendar.Event, error) {
	cl, ok := s.Catalog.ClientByName(ev.Client)
	if !ok {
		return calendar.Event{}, fmt.Errorf("unknown client %q", ev.Client)
	}
	draft := calendar.Event{
		Title:       ev.Title,
		Description: ev.Description,
		StartTime:   ev.Start,
		EndTime:     ev.End,
		ClientID:    cl.ID,
		Images:      append([]string(nil), ev.Images...),
	}
	for _, name := range ev.Platforms {
		p, ok := s.Catalog.PlatformByName(name)
		if !ok {
			return calendar.Event{}, fmt.Errorf("unknown platform %q", name)
		}
		draft.Platforms = append(draft.Platforms, p.ID)
	}
	for _, name := range ev.Labels {
		l, ok := s.Catalog.LabelByName(name)
		if !ok {
			return calendar.Event{}, fmt.Errorf("unknown label %q", name)
		}
		draft.Labels = append(draft.Labels, l.ID)
	}
	if ev.Repeat != nil {
		draft.Repeat = &calendar.RepeatRule{
			Frequency: ev.Repeat.Every,
			Interval:  calendar.Interval(ev.Repeat.Interval),
			Count:     ev.Repeat.Count,
		}
	}
	return draft, nil
}
