package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage"
)

func draft(title, client string, rule *calendar.RepeatRule) calendar.Event {
	start := time.Date(2025, time.April, 7, 10, 0, 0, 0, time.UTC)
	return calendar.Event{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		ClientID:  client,
		Labels:    []string{"lb-1", "lb-2"},
		Platforms: []string{"pl-1"},
	}
}

func seriesDraft(title, client string, count int) calendar.Event {
	ev := draft(title, client, nil)
	ev.Repeat = &calendar.RepeatRule{Frequency: 1, Interval: calendar.IntervalWeek, Count: count}
	return ev
}

func ids(events calendar.Events) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.ID
	}
	return out
}

func TestAddStandaloneEvent(t *testing.T) {
	r := New(Config{})
	ev, err := r.AddEvent(draft("one", "cl-1", nil))
	require.NoError(t, err)
	require.NotEmpty(t, ev.ID)

	all := r.Events()
	require.Len(t, all, 1)
	assert.True(t, all[0].Equals(ev))
}

func TestAddSeriesMaterializesFully(t *testing.T) {
	r := New(Config{})
	root, err := r.AddEvent(seriesDraft("weekly", "cl-1", 4))
	require.NoError(t, err)

	all := r.Events()
	require.Len(t, all, 5, "a series is root plus count children, never partial")
	assert.Equal(t, root.ID, all[0].ID)
	for _, child := range all[1:] {
		assert.Equal(t, root.ID, child.ParentID)
	}
}

func TestAddInvalidRulePropagates(t *testing.T) {
	r := New(Config{})
	bad := draft("broken", "cl-1", nil)
	bad.Repeat = &calendar.RepeatRule{Frequency: 0, Interval: calendar.IntervalDay, Count: 2}

	_, err := r.AddEvent(bad)
	require.Error(t, err)
	assert.Empty(t, r.Events(), "a failed add leaves the store untouched")
}

func TestUpdateStandaloneKeepsPosition(t *testing.T) {
	r := New(Config{})
	first, _ := r.AddEvent(draft("first", "cl-1", nil))
	second, _ := r.AddEvent(draft("second", "cl-1", nil))
	_, _ = r.AddEvent(draft("third", "cl-1", nil))

	second.Title = "renamed"
	require.NoError(t, r.UpdateEvent(second))

	all := r.Events()
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, "renamed", all[1].Title)
}

func TestUpdateChildCollapsesSeries(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("bystander", "cl-1", nil))
	root, _ := r.AddEvent(seriesDraft("weekly", "cl-1", 4))
	require.Len(t, r.Events(), 6)

	child := r.Events()[3]
	require.Equal(t, root.ID, child.ParentID)

	child.Title = "just this one"
	require.NoError(t, r.UpdateEvent(child))

	all := r.Events()
	require.Len(t, all, 2, "editing one child replaces the whole series with it")
	assert.Equal(t, "bystander", all[0].Title)
	assert.Equal(t, child.ID, all[1].ID)
	assert.Equal(t, "just this one", all[1].Title)
	for _, ev := range all {
		assert.NotEqual(t, root.ID, ev.ID)
	}
}

func TestUpdateRootRegeneratesSeries(t *testing.T) {
	r := New(Config{})
	root, _ := r.AddEvent(seriesDraft("weekly", "cl-1", 4))
	oldIDs := ids(r.Events()[1:])

	root.Repeat.Count = 2
	root.Title = "rescheduled"
	require.NoError(t, r.UpdateEvent(root))

	all := r.Events()
	require.Len(t, all, 3)
	for _, ev := range all {
		assert.Equal(t, "rescheduled", ev.Title)
		assert.NotContains(t, oldIDs, ev.ID, "old children are gone, new ones are fresh")
	}
}

func TestUpdateMissingSeriesKeyIsNoOpRemoval(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("bystander", "cl-1", nil))

	ghost := seriesDraft("ghost", "cl-1", 2)
	ghost.ID = "never-stored"
	require.NoError(t, r.UpdateEvent(ghost))

	all := r.Events()
	require.Len(t, all, 4, "removal of zero rows still inserts the regenerated series")
	assert.Equal(t, "bystander", all[0].Title)
}

func TestUpdateRejectsRuleWithParent(t *testing.T) {
	r := New(Config{})
	root, _ := r.AddEvent(seriesDraft("weekly", "cl-1", 2))
	child := r.Events()[1]
	child.Repeat = &calendar.RepeatRule{Frequency: 1, Interval: calendar.IntervalDay, Count: 1}

	require.Error(t, r.UpdateEvent(child))
	require.Len(t, r.Events(), 3, "a rejected update changes nothing")
	_, ok := r.EventByID(root.ID)
	assert.True(t, ok)
}

func TestDeleteSingle(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(seriesDraft("weekly", "cl-1", 3))
	child := r.Events()[2]

	r.DeleteEvent(child.ID, false)

	all := r.Events()
	require.Len(t, all, 3)
	assert.NotContains(t, ids(all), child.ID)
}

func TestDeleteCascadeFromChildRemovesWholeSeries(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("bystander", "cl-1", nil))
	_, _ = r.AddEvent(seriesDraft("weekly", "cl-1", 3))
	child := r.Events()[4]

	r.DeleteEvent(child.ID, true)

	all := r.Events()
	require.Len(t, all, 1)
	assert.Equal(t, "bystander", all[0].Title)
}

func TestDeleteMissingIsIdempotent(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("one", "cl-1", nil))
	_, _ = r.AddEvent(draft("two", "cl-2", nil))
	before := r.Events()

	r.DeleteEvent("no-such-id", false)
	r.DeleteEvent("no-such-id", true)

	after := r.Events()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, after[i].Equals(before[i]), "same members in the same order")
	}
}

func TestDeleteByClient(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("keep", "cl-1", nil))
	_, _ = r.AddEvent(seriesDraft("drop", "cl-2", 2))
	_, _ = r.AddEvent(draft("keep too", "cl-1", nil))

	r.DeleteByClient("cl-2")

	all := r.Events()
	require.Len(t, all, 2)
	for _, ev := range all {
		assert.Equal(t, "cl-1", ev.ClientID)
	}
}

func TestStripLabel(t *testing.T) {
	r := New(Config{})
	_, _ = r.AddEvent(draft("one", "cl-1", nil))
	_, _ = r.AddEvent(draft("two", "cl-2", nil))

	r.StripLabel("lb-1")

	all := r.Events()
	require.Len(t, all, 2, "label removal never deletes events")
	for _, ev := range all {
		assert.Equal(t, []string{"lb-2"}, ev.Labels)
	}
}

func TestEventsOnInclusiveSpan(t *testing.T) {
	r := New(Config{})
	ev := draft("campaign", "cl-1", nil)
	ev.StartTime = time.Date(2025, time.July, 3, 8, 0, 0, 0, time.UTC)
	ev.EndTime = time.Date(2025, time.July, 5, 18, 0, 0, 0, time.UTC)
	_, _ = r.AddEvent(ev)

	day := func(d int) time.Time {
		return time.Date(2025, time.July, d, 12, 0, 0, 0, time.UTC)
	}
	assert.Empty(t, r.EventsOn(day(2)))
	assert.Len(t, r.EventsOn(day(3)), 1)
	assert.Len(t, r.EventsOn(day(4)), 1)
	assert.Len(t, r.EventsOn(day(5)), 1)
	assert.Empty(t, r.EventsOn(day(6)))
}

func TestLoadEventsWindow(t *testing.T) {
	r := New(Config{})
	ev := draft("one", "cl-1", nil)
	_, _ = r.AddEvent(ev)

	cursor := storage.Cursor(ev.StartTime.AddDate(0, 0, -1), 48*time.Hour)
	assert.Len(t, r.LoadEvents(cursor), 1)

	past := storage.Cursor(ev.StartTime.AddDate(0, 0, -10), 24*time.Hour)
	assert.Empty(t, r.LoadEvents(past))

	backwards := storage.Cursor(ev.StartTime.AddDate(0, 0, 1), -48*time.Hour)
	assert.Len(t, r.LoadEvents(backwards), 1, "negative spans look backwards from the cursor")
}
