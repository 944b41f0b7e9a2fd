package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis"
	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage/memory"
)

var now = time.Now()

var (
	defaultDuration  = time.Hour * 336 // 2 weeks
	defaultStartTime = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
)

const (
	AppName  = "metis"
	SeedFile = "seed.yml"
)

var AppVersion = "HEAD"

var (
	AppWebsite = "https://git.sr.ht/~mariusor/metis"
	AppScopes  = []string{"read+write+follow"}
)

type logFn func(string, ...interface{})

var info = func(s string, args ...interface{}) {
	fmt.Printf(s+"\n", args...)
}

var errFn = func(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
}

func MkDirIfNotExists(p string) error {
	fi, err := os.Stat(p)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(p, os.ModeDir|os.ModePerm|0700)
	}
	if err != nil {
		return err
	}
	fi, err = os.Stat(p)
	if err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("path exists, and is not a folder %s", p)
	}
	return nil
}

func DataPath() string {
	homeDir, _ := os.UserHomeDir()
	xdgDataPath := filepath.Join(homeDir, ".local", "share")
	appPath := filepath.Join(xdgDataPath, AppName)

	if _, err := os.Stat(appPath); err != nil && errors.Is(err, os.ErrNotExist) {
		err := MkDirIfNotExists(appPath)
		if err != nil {
			log.Fatalf("Error: %s", err.Error())
		}
	}
	return appPath
}

// LoadSession builds the planner session for this run, seeded from the seed
// file under the data path when one exists and from the built-in demo data
// otherwise.
func LoadSession(c *cli.Context) (*metis.Session, error) {
	path := stringValue(c, "path")
	if path == "" {
		path = DataPath()
	}
	seed, err := metis.LoadSeed(filepath.Join(path, SeedFile))
	if err != nil {
		return nil, err
	}

	conf := memory.Config{ErrFn: errFn}
	if c.GlobalBool("verbose") {
		logger := lw.Dev()
		conf.LogFn = memory.LoggerFn(logger.Infof)
		conf.ErrFn = memory.LoggerFn(logger.Errorf)
	}
	return metis.NewSession(seed, conf)
}

// applyFilters resolves the --platform/--client/--label flags, accepting
// either catalog ids or exact names, and installs them on the session.
func applyFilters(s *metis.Session, c *cli.Context) error {
	resolve := func(d calendar.Dimension, values []string) error {
		ids := make([]string, 0, len(values))
		for _, v := range values {
			var id string
			switch d {
			case calendar.ByPlatform:
				if p, ok := s.Catalog.PlatformByID(v); ok {
					id = p.ID
				} else if p, ok := s.Catalog.PlatformByName(v); ok {
					id = p.ID
				}
			case calendar.ByClient:
				if cl, ok := s.Catalog.ClientByID(v); ok {
					id = cl.ID
				} else if cl, ok := s.Catalog.ClientByName(v); ok {
					id = cl.ID
				}
			case calendar.ByLabel:
				if l, ok := s.Catalog.LabelByID(v); ok {
					id = l.ID
				} else if l, ok := s.Catalog.LabelByName(v); ok {
					id = l.ID
				}
			}
			if id == "" {
				return fmt.Errorf("unknown %s %q", d, v)
			}
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			s.Filters.Set(d, ids)
		}
		return nil
	}

	if err := resolve(calendar.ByPlatform, c.StringSlice("platform")); err != nil {
		return err
	}
	if err := resolve(calendar.ByClient, c.StringSlice("client")); err != nil {
		return err
	}
	return resolve(calendar.ByLabel, c.StringSlice("label"))
}

func FilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Only show events targeting this platform (name or id)",
		},
		&cli.StringSliceFlag{
			Name:  "client",
			Usage: "Only show events owned by this client (name or id)",
		},
		&cli.StringSliceFlag{
			Name:  "label",
			Usage: "Only show events tagged with this label (name or id)",
		},
	}
}

func parseStartDate(s string) time.Time {
	d := time.Now().UTC()
	if s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			d = parsed
		}
	}
	return d.Truncate(24 * time.Hour)
}

func stringValue(c *cli.Context, p string) string {
	for {
		if c.IsSet(p) {
			if val := c.String(p); val != "" {
				return val
			}
		}
		if c = c.Parent(); c == nil {
			break
		}
	}
	return ""
}

func stringSliceValues(c *cli.Context, p string) []string {
	for {
		if c.IsSet(p) {
			if values := c.StringSlice(p); values != nil {
				return values
			}
		}
		if c = c.Parent(); c == nil {
			break
		}
	}
	return nil
}

func FormatDuration(d time.Duration) string {
	label := "hour"
	val := float64(d) / float64(time.Hour)
	if d > ResolutionDay {
		label = "day"
		val = float64(d) / float64(ResolutionDay)
	}
	if d > ResolutionWeek {
		label = "week"
		val = float64(d) / float64(ResolutionWeek)
	}
	if d > ResolutionMonthish {
		label = "month"
		val = float64(d) / float64(ResolutionMonthish)
	}
	if d > ResolutionYearish {
		label = "year"
		val = float64(d) / float64(ResolutionYearish)
	}
	if val != 1.0 && val != -1.0 {
		label = label + "s"
	}
	return fmt.Sprintf("%+.2g%s", val, label)
}

const (
	ResolutionDay      = 24 * time.Hour
	ResolutionWeek     = 7 * ResolutionDay
	ResolutionMonthish = 31 * ResolutionDay
	ResolutionYearish  = 365 * ResolutionDay
)
