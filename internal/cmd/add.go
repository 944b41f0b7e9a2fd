package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis"
	"git.sr.ht/~mariusor/metis/calendar"
)

var AddCmd = cli.Command{
	Name:  "add",
	Usage: "Adds a publication event to the planner",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "Event title",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Event description",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Start date-time, 2006-01-02 15:04 format",
			Value: defaultStartTime.Format("2006-01-02 15:04"),
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "End date-time, defaults to start",
		},
		&cli.StringFlag{
			Name:  "client",
			Usage: "Owning client (name or id)",
		},
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Target platform (name or id), repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "label",
			Usage: "Label (name or id), repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "image",
			Usage: "Image reference URI, repeatable",
		},
		&cli.IntFlag{
			Name:  "repeat-every",
			Usage: "Repeat frequency",
		},
		&cli.StringFlag{
			Name:  "repeat-interval",
			Usage: "Repeat interval: day, week, month, year",
			Value: string(calendar.IntervalWeek),
		},
		&cli.IntFlag{
			Name:  "repeat-count",
			Usage: "How many additional occurrences to generate",
		},
	},
	Action: addEvent,
}

func addEvent(c *cli.Context) error {
	s, err := LoadSession(c)
	if err != nil {
		return err
	}

	draft, err := draftFromFlags(s, c)
	if err != nil {
		return err
	}
	ev, err := s.Events.AddEvent(draft)
	if err != nil {
		return err
	}

	series := s.Events.FilterEvents(func(cur calendar.Event) bool {
		return cur.SeriesKey() == ev.ID
	})
	info("added %s", series)

	if c.GlobalBool("dry-run") {
		return nil
	}
	return saveSession(s, c)
}

func saveSession(s *metis.Session, c *cli.Context) error {
	path := stringValue(c, "path")
	if path == "" {
		path = DataPath()
	}
	return metis.SaveSeed(filepath.Join(path, SeedFile), metis.SeedFromSession(s))
}

func draftFromFlags(s *metis.Session, c *cli.Context) (calendar.Event, error) {
	title := c.String("title")
	if title == "" {
		return calendar.Event{}, fmt.Errorf("an event needs a title")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", c.String("start"), time.Local)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("invalid start date %q: %w", c.String("start"), err)
	}
	end := start
	if ef := c.String("end"); ef != "" {
		if end, err = time.ParseInLocation("2006-01-02 15:04", ef, time.Local); err != nil {
			return calendar.Event{}, fmt.Errorf("invalid end date %q: %w", ef, err)
		}
	}

	clName := c.String("client")
	cl, ok := s.Catalog.ClientByID(clName)
	if !ok {
		if cl, ok = s.Catalog.ClientByName(clName); !ok {
			return calendar.Event{}, fmt.Errorf("unknown client %q", clName)
		}
	}

	draft := calendar.Event{
		Title:       title,
		Description: c.String("description"),
		StartTime:   start,
		EndTime:     end,
		ClientID:    cl.ID,
		Images:      c.StringSlice("image"),
	}
	for _, v := range c.StringSlice("platform") {
		p, ok := s.Catalog.PlatformByID(v)
		if !ok {
			if p, ok = s.Catalog.PlatformByName(v); !ok {
				return calendar.Event{}, fmt.Errorf("unknown platform %q", v)
			}
		}
		draft.Platforms = append(draft.Platforms, p.ID)
	}
	for _, v := range c.StringSlice("label") {
		l, ok := s.Catalog.LabelByID(v)
		if !ok {
			if l, ok = s.Catalog.LabelByName(v); !ok {
				return calendar.Event{}, fmt.Errorf("unknown label %q", v)
			}
		}
		draft.Labels = append(draft.Labels, l.ID)
	}

	if c.IsSet("repeat-every") || c.IsSet("repeat-count") {
		draft.Repeat = &calendar.RepeatRule{
			Frequency: c.Int("repeat-every"),
			Interval:  calendar.Interval(c.String("repeat-interval")),
			Count:     c.Int("repeat-count"),
		}
	}
	return draft, nil
}
