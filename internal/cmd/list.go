package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis/storage"
)

var ListCmd = cli.Command{
	Name:  "list",
	Usage: "Lists planned publication events",
	Flags: append(FilterFlags(),
		&cli.StringFlag{
			Name:  "start",
			Usage: "Date at which to start",
			Value: now.Format("2006-01-02"),
		},
		&cli.DurationFlag{
			Name:  "end",
			Usage: "Date interval to check",
			Value: defaultDuration,
		},
	),
	Action: listEvents,
}

func listEvents(c *cli.Context) error {
	s, err := LoadSession(c)
	if err != nil {
		return err
	}
	if err := applyFilters(s, c); err != nil {
		return err
	}

	start := defaultStartTime
	if sf := c.String("start"); len(sf) > 0 {
		if sfp, err := time.Parse("2006-01-02", sf); err == nil {
			start = sfp
		}
	}
	duration := c.Duration("end")

	info("Loading events for period: %s - %s", start.Format("2006-01-02 Mon"), start.Add(duration).Format("2006-01-02 Mon"))
	loaded := s.Events.LoadEvents(storage.Cursor(start, duration))
	events := loaded[:0:0]
	for _, ev := range loaded {
		if s.Filters.Matches(ev) {
			events = append(events, ev)
		}
	}
	if len(events) == 0 {
		fmt.Printf("nothing found\n")
		return nil
	}

	for _, ev := range events {
		owner := ""
		if cl, ok := s.Catalog.ClientByID(ev.ClientID); ok {
			owner = cl.Name
		}
		targets := make([]string, 0, len(ev.Platforms))
		for _, pid := range ev.Platforms {
			if p, ok := s.Catalog.PlatformByID(pid); ok {
				targets = append(targets, p.Name)
			}
		}
		fmtTime := ev.StartTime.Format("2006-01-02 15:04 MST")
		info("[%s] %s: %s @ %s//%s", ev.Role(), owner, ev.Title, fmtTime, ev.EndTime.Sub(ev.StartTime))
		if len(targets) > 0 {
			info("  -> %s", strings.Join(targets, ", "))
		}
		if ev.Description != "" {
			info("%v", ev.Description)
		}
	}
	return nil
}
