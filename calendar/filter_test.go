package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterEvent(client string, platforms, labels []string) Event {
	return Event{
		ID:        NewID(),
		ClientID:  client,
		Platforms: platforms,
		Labels:    labels,
	}
}

func TestFiltersEmptyPassesAll(t *testing.T) {
	f := Filters{}
	assert.True(t, f.Matches(filterEvent("A", []string{"p1"}, []string{"l1"})))
	assert.True(t, f.Matches(Event{}))
}

func TestFiltersComposition(t *testing.T) {
	f := Filters{}
	f.Set(ByClient, []string{"A"})
	f.Set(ByLabel, []string{"L1", "L2"})

	assert.True(t, f.Matches(filterEvent("A", nil, []string{"L1"})))
	assert.False(t, f.Matches(filterEvent("B", nil, []string{"L1", "L2"})), "client mismatch fails regardless of labels")
	assert.False(t, f.Matches(filterEvent("A", nil, []string{"L3"})))
}

func TestFiltersPlatformDimension(t *testing.T) {
	f := Filters{}
	f.Set(ByPlatform, []string{"p1", "p2"})

	assert.True(t, f.Matches(filterEvent("A", []string{"p2", "p9"}, nil)))
	assert.False(t, f.Matches(filterEvent("A", []string{"p9"}, nil)))
	assert.False(t, f.Matches(filterEvent("A", nil, nil)))
}

func TestFiltersSetReplacesWholesale(t *testing.T) {
	f := Filters{}
	f.Set(ByClient, []string{"A", "B"})
	f.Set(ByClient, []string{"C"})

	assert.Equal(t, []string{"C"}, f.Clients)
	assert.False(t, f.Matches(filterEvent("A", nil, nil)))
}

func TestFiltersClear(t *testing.T) {
	f := Filters{}
	f.Set(ByPlatform, []string{"p1"})
	f.Set(ByClient, []string{"A"})
	f.Set(ByLabel, []string{"L1"})
	f.Clear()

	assert.True(t, f.Empty())
	assert.True(t, f.Matches(Event{}))
}

func TestFiltersSelectionIsDetached(t *testing.T) {
	ids := []string{"A"}
	f := Filters{}
	f.Set(ByClient, ids)
	ids[0] = "B"

	assert.True(t, f.Matches(filterEvent("A", nil, nil)))
}
