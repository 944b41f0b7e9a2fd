package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis"
	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/internal/post"
	"git.sr.ht/~mariusor/metis/storage"
)

var PostCmd = cli.Command{
	Name:  "post",
	Usage: "Posts the planned content schedule to the Fediverse",
	Flags: append(FilterFlags(),
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the schedule instead of posting it",
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "Date at which to start",
			Value: defaultStartTime.Format("2006-01-02"),
		},
		&cli.StringSliceFlag{
			Name:  "instance",
			Usage: "Only post to these instances",
		},
	),
	Action: Post(ResolutionDay),
}

type PostConfig struct {
	Path       string
	DryRun     bool
	Date       time.Time
	Resolution time.Duration
	PostFns    []post.PosterFn
}

func shouldPostToInstance(instances []string, inst string) bool {
	if len(instances) == 0 {
		return true
	}
	name := urlHost(inst)
	for _, instance := range instances {
		if strings.EqualFold(urlHost(instance), name) {
			return true
		}
	}
	return false
}

func urlHost(u string) string {
	uu, err := url.ParseRequestURI(u)
	if err != nil {
		return ""
	}
	return uu.Host
}

func Post(resolution time.Duration) cli.ActionFunc {
	return func(c *cli.Context) error {
		conf := PostConfig{
			DryRun:     c.Bool("dry-run"),
			Date:       parseStartDate(stringValue(c, "date")),
			Resolution: resolution,
			Path:       stringValue(c, "path"),
		}

		instances := stringSliceValues(c, "instance")
		if !conf.DryRun {
			creds, err := post.LoadCredentials(DataPath())
			if err != nil {
				return fmt.Errorf("unable to load credentials for the client: %w", err)
			}
			for _, cred := range creds {
				if !shouldPostToInstance(instances, cred.InstanceURL) {
					continue
				}
				conf.PostFns = append(conf.PostFns, post.ToMastodon(cred))
			}
		}
		if len(conf.PostFns) == 0 {
			conf.PostFns = append(conf.PostFns, post.ToStdout)
		}

		s, err := LoadSession(c)
		if err != nil {
			return err
		}
		if err := applyFilters(s, c); err != nil {
			return err
		}
		return LoadAndPost(s, conf)
	}
}

func LoadAndPost(s *metis.Session, c PostConfig) error {
	if c.Resolution == 0 {
		c.Resolution = ResolutionDay
	}
	post.SetLoggers(info, errFn)

	planned := make(calendar.Events, 0)
	for _, ev := range s.Events.LoadEvents(storage.Cursor(c.Date, c.Resolution)) {
		if s.Filters.Matches(ev) {
			planned = append(planned, ev)
		}
	}
	if len(planned) == 0 {
		info("No planned content for the period: %s %s", c.Date.Format("Monday, _2 January 2006"), FormatDuration(c.Resolution))
		return nil
	}

	toPost := make(map[time.Time]post.Items)
	for _, ev := range planned {
		it := post.Item{Event: ev}
		if cl, ok := s.Catalog.ClientByID(ev.ClientID); ok {
			it.Client = cl.Name
		}
		for _, pid := range ev.Platforms {
			if p, ok := s.Catalog.PlatformByID(pid); ok {
				it.Platforms = append(it.Platforms, p.Name)
			}
		}
		for _, lid := range ev.Labels {
			if l, ok := s.Catalog.LabelByID(lid); ok {
				it.Tags = append(it.Tags, l.Name)
			}
		}
		day := calendar.DateOf(ev.StartTime)
		toPost[day] = append(toPost[day], it)
	}

	for _, postFn := range c.PostFns {
		if err := postFn(toPost); err != nil {
			info("Error trying to post: %s", err)
		}
	}
	return nil
}
