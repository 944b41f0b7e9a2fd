package post

import (
	"fmt"
	"time"

	"git.sr.ht/~mariusor/metis/calendar"
)

// Item is one plannable publication with its catalog references already
// resolved to display names, so posters don't need store lookups.
type Item struct {
	calendar.Event
	Client    string
	Platforms []string
	Tags      []string
}

type Items []Item

func (i Item) String() string {
	t := i.StartTime.Format("15:04")
	if len(i.Client) == 0 {
		return fmt.Sprintf("%s %s", t, i.Title)
	}
	return fmt.Sprintf("%s %s: %s", t, i.Client, i.Title)
}

// PosterFn publishes one day-grouped batch of planned items.
type PosterFn func(groups map[time.Time]Items) error

var infFn = func(s string, args ...interface{}) {}
var errFn = func(s string, args ...interface{}) {}

type logFn func(string, ...interface{})

func SetLoggers(inf, err logFn) {
	if inf != nil {
		infFn = inf
	}
	if err != nil {
		errFn = err
	}
}
