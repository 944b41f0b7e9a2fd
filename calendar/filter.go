package calendar

// Dimension names one of the three independent filter axes.
type Dimension string

const (
	ByPlatform Dimension = "platforms"
	ByClient   Dimension = "clients"
	ByLabel    Dimension = "labels"
)

// Filters holds the active selection for each dimension. An empty dimension
// applies no restriction; dimensions combine with AND, values inside one
// dimension with OR.
type Filters struct {
	Platforms []string
	Clients   []string
	Labels    []string
}

// Set replaces a dimension's selection wholesale.
func (f *Filters) Set(d Dimension, ids []string) {
	sel := append([]string(nil), ids...)
	switch d {
	case ByPlatform:
		f.Platforms = sel
	case ByClient:
		f.Clients = sel
	case ByLabel:
		f.Labels = sel
	}
}

func (f *Filters) Clear() {
	f.Platforms = nil
	f.Clients = nil
	f.Labels = nil
}

func (f Filters) Empty() bool {
	return len(f.Platforms) == 0 && len(f.Clients) == 0 && len(f.Labels) == 0
}

func (f Filters) Matches(e Event) bool {
	if f.Empty() {
		return true
	}
	matchesPlatform := len(f.Platforms) == 0 || intersects(e.Platforms, f.Platforms)
	matchesClient := len(f.Clients) == 0 || contains(f.Clients, e.ClientID)
	matchesLabel := len(f.Labels) == 0 || intersects(e.Labels, f.Labels)
	return matchesPlatform && matchesClient && matchesLabel
}

func contains(sl []string, v string) bool {
	for _, s := range sl {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
