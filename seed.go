package metis

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.sr.ht/~mariusor/metis/calendar"
)

// Seed describes the catalog entries and events a fresh session starts with.
// Events reference platforms, clients and labels by name; the session
// resolves them to ids while loading.
type Seed struct {
	Platforms []SeedPlatform `yaml:"platforms"`
	Clients   []SeedEntry    `yaml:"clients"`
	Labels    []SeedEntry    `yaml:"labels"`
	Events    []SeedEvent    `yaml:"events"`
}

type SeedPlatform struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type SeedEntry struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type SeedRepeat struct {
	Every    int    `yaml:"every"`
	Interval string `yaml:"interval"`
	Count    int    `yaml:"count"`
}

type SeedEvent struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Start       time.Time   `yaml:"start"`
	End         time.Time   `yaml:"end"`
	Platforms   []string    `yaml:"platforms"`
	Client      string      `yaml:"client"`
	Labels      []string    `yaml:"labels"`
	Images      []string    `yaml:"images,omitempty"`
	Repeat      *SeedRepeat `yaml:"repeat,omitempty"`
}

// LoadSeed reads a seed file. A missing path falls back to DefaultSeed.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSeed(), nil
		}
		return Seed{}, fmt.Errorf("unable to read seed file %s: %w", path, err)
	}
	seed := Seed{}
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("unable to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// DefaultSeed returns the built-in demo data: the usual platform lineup, a
// handful of clients and labels, and a few events in the days ahead.
func DefaultSeed() Seed {
	today := time.Now()
	day := func(offset int, h int) time.Time {
		d := today.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, d.Location())
	}
	return Seed{
		Platforms: []SeedPlatform{
			{Name: "Facebook", Icon: "facebook"},
			{Name: "Instagram", Icon: "instagram"},
			{Name: "LinkedIn", Icon: "linkedin"},
			{Name: "Twitter", Icon: "twitter"},
			{Name: "TikTok", Icon: "video"},
			{Name: "YouTube", Icon: "youtube"},
			{Name: "Pinterest", Icon: "pin"},
		},
		Clients: []SeedEntry{
			{Name: "Tech Solutions Inc.", Color: "#3B82F6"},
			{Name: "Green Earth Organics", Color: "#10B981"},
			{Name: "Urban Fitness", Color: "#F59E0B"},
			{Name: "Luxury Living", Color: "#8B5CF6"},
		},
		Labels: []SeedEntry{
			{Name: "Urgent", Color: "#EF4444"},
			{Name: "Review", Color: "#F59E0B"},
			{Name: "Approved", Color: "#10B981"},
			{Name: "Draft", Color: "#6B7280"},
		},
		Events: []SeedEvent{
			{
				Title:       "Product Launch Post",
				Description: "Announce the new product line with promotional images",
				Start:       day(1, 10),
				End:         day(1, 11),
				Platforms:   []string{"Facebook", "Instagram"},
				Client:      "Tech Solutions Inc.",
				Labels:      []string{"Approved"},
				Images: []string{
					"https://images.unsplash.com/photo-1611162617213-7d7a39e9b1d7?auto=format&fit=crop&w=800&q=80",
				},
			},
			{
				Title:       "Weekly Wellness Tips",
				Description: "Share health and wellness tips for our audience",
				Start:       day(2, 9),
				End:         day(2, 10),
				Platforms:   []string{"Instagram", "LinkedIn"},
				Client:      "Urban Fitness",
				Labels:      []string{"Draft"},
				Images: []string{
					"https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&w=800&q=80",
				},
				Repeat: &SeedRepeat{Every: 1, Interval: "week", Count: 4},
			},
			{
				Title:       "Holiday Campaign",
				Description: "Special holiday promotion across all platforms",
				Start:       day(3, 8),
				End:         day(5, 18),
				Platforms:   []string{"Facebook", "Instagram", "LinkedIn", "Twitter"},
				Client:      "Luxury Living",
				Labels:      []string{"Urgent", "Approved"},
				Images: []string{
					"https://images.unsplash.com/photo-1513885535751-8b9238bd345a?auto=format&fit=crop&w=800&q=80",
					"https://images.unsplash.com/photo-1512909006721-3d6018887383?auto=format&fit=crop&w=800&q=80",
				},
			},
		},
	}
}

// SeedFromSession flattens the session back into seed form so changes made
// in one run survive into the next. Only standalone events and series roots
// are written; children are regenerated from their root's rule at load time.
func SeedFromSession(s *Session) Seed {
	seed := Seed{}
	for _, p := range s.Catalog.Platforms() {
		seed.Platforms = append(seed.Platforms, SeedPlatform{Name: p.Name, Icon: string(p.Icon)})
	}
	for _, cl := range s.Catalog.Clients() {
		seed.Clients = append(seed.Clients, SeedEntry{Name: cl.Name, Color: cl.Color})
	}
	for _, l := range s.Catalog.Labels() {
		seed.Labels = append(seed.Labels, SeedEntry{Name: l.Name, Color: l.Color})
	}
	for _, ev := range s.Events.Events() {
		if ev.Role() == calendar.RoleChild {
			continue
		}
		se := SeedEvent{
			Title:       ev.Title,
			Description: ev.Description,
			Start:       ev.StartTime,
			End:         ev.EndTime,
			Images:      append([]string(nil), ev.Images...),
		}
		if cl, ok := s.Catalog.ClientByID(ev.ClientID); ok {
			se.Client = cl.Name
		}
		for _, pid := range ev.Platforms {
			if p, ok := s.Catalog.PlatformByID(pid); ok {
				se.Platforms = append(se.Platforms, p.Name)
			}
		}
		for _, lid := range ev.Labels {
			if l, ok := s.Catalog.LabelByID(lid); ok {
				se.Labels = append(se.Labels, l.Name)
			}
		}
		if ev.Repeat != nil {
			se.Repeat = &SeedRepeat{
				Every:    ev.Repeat.Frequency,
				Interval: string(ev.Repeat.Interval),
				Count:    ev.Repeat.Count,
			}
		}
		seed.Events = append(seed.Events, se)
	}
	return seed
}

// SaveSeed writes the seed to a YAML file, first-run style.
func SaveSeed(path string, seed Seed) error {
	raw, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("unable to encode seed: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("unable to write seed file %s: %w", path, err)
	}
	return nil
}
