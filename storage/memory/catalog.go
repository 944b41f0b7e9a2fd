package memory

import (
	"fmt"
	"math/rand"

	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage"
)

// Catalog holds the platform, client and label reference data. Deletes
// cascade into the event store through the injected Cascade so ownership
// stays one-way: the event store never reaches back into the catalog.
type Catalog struct {
	platforms []calendar.Platform
	clients   []calendar.Client
	labels    []calendar.Label
	events    storage.Cascade
	log       LoggerFn
	err       LoggerFn
}

func NewCatalog(c Config, events storage.Cascade) *Catalog {
	ct := Catalog{
		platforms: make([]calendar.Platform, 0),
		clients:   make([]calendar.Client, 0),
		labels:    make([]calendar.Label, 0),
		events:    events,
		log:       func(string, ...interface{}) {},
		err:       func(string, ...interface{}) {},
	}
	if c.LogFn != nil {
		ct.log = c.LogFn
	}
	if c.ErrFn != nil {
		ct.err = c.ErrFn
	}
	return &ct
}

func (c *Catalog) AddPlatform(name string, icon calendar.Icon) (calendar.Platform, error) {
	if !calendar.ValidIcon(icon) {
		return calendar.Platform{}, fmt.Errorf("unknown platform icon %q", icon)
	}
	p := calendar.Platform{ID: calendar.NewID(), Name: name, Icon: icon}
	c.platforms = append(c.platforms, p)
	return p, nil
}

// AddClient creates a client, picking a random display color when none is
// given.
func (c *Catalog) AddClient(name, color string) calendar.Client {
	if color == "" {
		color = randomColor()
	}
	cl := calendar.Client{ID: calendar.NewID(), Name: name, Color: color}
	c.clients = append(c.clients, cl)
	return cl
}

func (c *Catalog) AddLabel(name, color string) calendar.Label {
	l := calendar.Label{ID: calendar.NewID(), Name: name, Color: color}
	c.labels = append(c.labels, l)
	return l
}

// DeletePlatform removes the catalog entry only. Events keep referencing the
// id; lookups for it just come back empty.
func (c *Catalog) DeletePlatform(id string) {
	next := make([]calendar.Platform, 0, len(c.platforms))
	for _, p := range c.platforms {
		if p.ID != id {
			next = append(next, p)
		}
	}
	c.platforms = next
}

// DeleteClient removes the client and every event it owns. Events can't
// outlive their owner.
func (c *Catalog) DeleteClient(id string) {
	next := make([]calendar.Client, 0, len(c.clients))
	for _, cl := range c.clients {
		if cl.ID != id {
			next = append(next, cl)
		}
	}
	c.clients = next
	if c.events != nil {
		c.events.DeleteByClient(id)
	}
}

// DeleteLabel removes the label and strips it from every event's label set.
func (c *Catalog) DeleteLabel(id string) {
	next := make([]calendar.Label, 0, len(c.labels))
	for _, l := range c.labels {
		if l.ID != id {
			next = append(next, l)
		}
	}
	c.labels = next
	if c.events != nil {
		c.events.StripLabel(id)
	}
}

func (c *Catalog) Platforms() []calendar.Platform {
	return append([]calendar.Platform(nil), c.platforms...)
}

func (c *Catalog) Clients() []calendar.Client {
	return append([]calendar.Client(nil), c.clients...)
}

func (c *Catalog) Labels() []calendar.Label {
	return append([]calendar.Label(nil), c.labels...)
}

func (c *Catalog) PlatformByID(id string) (calendar.Platform, bool) {
	for _, p := range c.platforms {
		if p.ID == id {
			return p, true
		}
	}
	return calendar.Platform{}, false
}

func (c *Catalog) ClientByID(id string) (calendar.Client, bool) {
	for _, cl := range c.clients {
		if cl.ID == id {
			return cl, true
		}
	}
	return calendar.Client{}, false
}

func (c *Catalog) LabelByID(id string) (calendar.Label, bool) {
	for _, l := range c.labels {
		if l.ID == id {
			return l, true
		}
	}
	return calendar.Label{}, false
}

// ClientByName resolves a client by exact name, a convenience for the CLI
// and feed surfaces where ids are unwieldy.
func (c *Catalog) ClientByName(name string) (calendar.Client, bool) {
	for _, cl := range c.clients {
		if cl.Name == name {
			return cl, true
		}
	}
	return calendar.Client{}, false
}

// LabelByName resolves a label by exact name.
func (c *Catalog) LabelByName(name string) (calendar.Label, bool) {
	for _, l := range c.labels {
		if l.Name == name {
			return l, true
		}
	}
	return calendar.Label{}, false
}

// PlatformByName resolves a platform by exact name.
func (c *Catalog) PlatformByName(name string) (calendar.Platform, bool) {
	for _, p := range c.platforms {
		if p.Name == name {
			return p, true
		}
	}
	return calendar.Platform{}, false
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0xffffff+1))
}
