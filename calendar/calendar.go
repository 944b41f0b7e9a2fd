package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Icon is the closed set of glyphs the UI knows how to draw for a platform.
type Icon string

const (
	IconFacebook  Icon = "facebook"
	IconInstagram Icon = "instagram"
	IconLinkedIn  Icon = "linkedin"
	IconTwitter   Icon = "twitter"
	IconVideo     Icon = "video"
	IconYouTube   Icon = "youtube"
	IconPin       Icon = "pin"
)

var ValidIcons = []Icon{
	IconFacebook, IconInstagram, IconLinkedIn, IconTwitter,
	IconVideo, IconYouTube, IconPin,
}

func ValidIcon(i Icon) bool {
	for _, icon := range ValidIcons {
		if icon == i {
			return true
		}
	}
	return false
}

// Platform is a publication target. Reference data, seeded at startup.
type Platform struct {
	ID   string
	Name string
	Icon Icon
}

// Client owns events. Deleting a client deletes its events.
type Client struct {
	ID    string
	Name  string
	Color string
}

// Label is a non-essential tag. Deleting a label only strips it from events.
type Label struct {
	ID    string
	Name  string
	Color string
}

type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

var ValidIntervals = []Interval{IntervalDay, IntervalWeek, IntervalMonth, IntervalYear}

func ValidInterval(i Interval) bool {
	for _, in := range ValidIntervals {
		if in == i {
			return true
		}
	}
	return false
}

// RepeatRule describes "repeat every Frequency Intervals, Count additional
// times after the original".
type RepeatRule struct {
	Frequency int
	Interval  Interval
	Count     int
}

func (r RepeatRule) Validate() error {
	if r.Frequency < 1 {
		return &InvalidRuleError{Rule: r, Reason: "frequency must be positive"}
	}
	if r.Count < 0 {
		return &InvalidRuleError{Rule: r, Reason: "occurrence count can't be negative"}
	}
	if !ValidInterval(r.Interval) {
		return &InvalidRuleError{Rule: r, Reason: fmt.Sprintf("invalid interval %q", r.Interval)}
	}
	return nil
}

type InvalidRuleError struct {
	Rule   RepeatRule
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid repeat rule %+v: %s", e.Rule, e.Reason)
}

// Role tells which part an event plays in a repeat series.
type Role int

const (
	RoleStandalone Role = iota
	RoleRoot
	RoleChild
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleChild:
		return "child"
	}
	return "standalone"
}

type Event struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Platforms   []string
	ClientID    string
	Labels      []string
	Images      []string
	Repeat      *RepeatRule
	ParentID    string
}

type Events []Event

func NewID() string {
	return uuid.NewString()
}

// Role derives the series role from which of the two optional fields is set.
// An event carrying both a rule and a parent id is rejected by Validate.
func (e Event) Role() Role {
	if e.ParentID != "" {
		return RoleChild
	}
	if e.Repeat != nil {
		return RoleRoot
	}
	return RoleStandalone
}

// SeriesKey is the id shared by every member of a series: the root's own id,
// no matter which member it is read from.
func (e Event) SeriesKey() string {
	if e.ParentID != "" {
		return e.ParentID
	}
	return e.ID
}

func (e Event) Validate() error {
	if e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("event %q ends %s before it starts", e.Title, e.StartTime.Sub(e.EndTime))
	}
	if e.Repeat != nil && e.ParentID != "" {
		return fmt.Errorf("event %q can't carry both a repeat rule and a parent id", e.Title)
	}
	if e.Repeat != nil {
		return e.Repeat.Validate()
	}
	return nil
}

// Clone returns an independent copy, slices and rule included, so that
// mutating one series member can't corrupt its siblings.
func (e Event) Clone() Event {
	c := e
	c.Platforms = append([]string(nil), e.Platforms...)
	c.Labels = append([]string(nil), e.Labels...)
	c.Images = append([]string(nil), e.Images...)
	if e.Repeat != nil {
		r := *e.Repeat
		c.Repeat = &r
	}
	return c
}

func stringArrayEqual(a1, a2 []string) bool {
	if len(a1) != len(a2) {
		return false
	}
	s1 := append([]string(nil), a1...)
	s2 := append([]string(nil), a2...)
	sort.Strings(s1)
	sort.Strings(s2)
	for k, v := range s1 {
		if v != s2[k] {
			return false
		}
	}
	return true
}

func (e Event) Equals(other Event) bool {
	sameRule := e.Repeat == nil && other.Repeat == nil ||
		e.Repeat != nil && other.Repeat != nil && *e.Repeat == *other.Repeat
	return e.ID == other.ID &&
		e.Title == other.Title &&
		e.Description == other.Description &&
		e.StartTime.Equal(other.StartTime) &&
		e.EndTime.Equal(other.EndTime) &&
		e.ClientID == other.ClientID &&
		e.ParentID == other.ParentID &&
		stringArrayEqual(e.Platforms, other.Platforms) &&
		stringArrayEqual(e.Labels, other.Labels) &&
		stringArrayEqual(e.Images, other.Images) &&
		sameRule
}

// OnDay reports whether day falls inside the event's [start, end] span,
// inclusive on both ends, at date granularity.
func (e Event) OnDay(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(e.StartTime)) && !d.After(DateOf(e.EndTime))
}

// Overlaps reports whether the event's span touches the [from, to] window.
func (e Event) Overlaps(from, to time.Time) bool {
	return !DateOf(e.EndTime).Before(DateOf(from)) && !DateOf(e.StartTime).After(DateOf(to))
}

// DateOf truncates a timestamp to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (e Event) String() string {
	return e.GoString()
}

func (e Event) GoString() string {
	fmtTime := e.StartTime.Format("2006-01-02 15:04 MST")
	if e.Role() == RoleStandalone {
		return fmt.Sprintf("<[%s] %s @ %s//%s>", e.ID, e.Title, fmtTime, e.EndTime.Sub(e.StartTime))
	}
	return fmt.Sprintf("<[%s:%s] %s @ %s//%s>", e.ID, e.Role(), e.Title, fmtTime, e.EndTime.Sub(e.StartTime))
}

func (e Events) String() string {
	return e.GoString()
}

func (e Events) GoString() string {
	ss := make([]string, len(e))
	for i, ev := range e {
		ss[i] = ev.GoString()
	}
	return fmt.Sprintf("Events[%d]:\n\t%s\n", len(e), strings.Join(ss, "\n\t"))
}

func (e Events) Contains(inc Event) bool {
	for _, ev := range e {
		if ev.Equals(inc) {
			return true
		}
	}
	return false
}
