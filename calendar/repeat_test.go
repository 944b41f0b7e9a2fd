package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(rule *RepeatRule) Event {
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	return Event{
		ID:          NewID(),
		Title:       "Weekly Wellness Tips",
		Description: "Share health and wellness tips",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Platforms:   []string{"pl-1", "pl-2"},
		ClientID:    "cl-1",
		Labels:      []string{"lb-1"},
		Images:      []string{"https://example.com/img.jpg"},
		Repeat:      rule,
	}
}

func TestExpandCount(t *testing.T) {
	for _, count := range []int{1, 4, 12} {
		root := testRoot(&RepeatRule{Frequency: 1, Interval: IntervalWeek, Count: count})
		series, err := Expand(root)
		require.NoError(t, err)
		require.Len(t, series, count+1)
		assert.True(t, series[0].Equals(root), "first instance should be the unmodified root")
	}
}

func TestExpandLineage(t *testing.T) {
	root := testRoot(&RepeatRule{Frequency: 2, Interval: IntervalDay, Count: 5})
	series, err := Expand(root)
	require.NoError(t, err)

	seen := map[string]bool{root.ID: true}
	for _, child := range series[1:] {
		assert.Equal(t, root.ID, child.ParentID)
		assert.Nil(t, child.Repeat, "children don't carry their own rule")
		assert.NotEqual(t, root.ID, child.ID)
		assert.False(t, seen[child.ID], "child ids should be pairwise distinct")
		seen[child.ID] = true

		assert.Equal(t, root.Title, child.Title)
		assert.Equal(t, root.Description, child.Description)
		assert.Equal(t, root.ClientID, child.ClientID)
		assert.Equal(t, root.Platforms, child.Platforms)
		assert.Equal(t, root.Labels, child.Labels)
		assert.Equal(t, root.Images, child.Images)
	}
}

func TestExpandInstancesAreIndependent(t *testing.T) {
	root := testRoot(&RepeatRule{Frequency: 1, Interval: IntervalDay, Count: 2})
	series, err := Expand(root)
	require.NoError(t, err)

	series[1].Labels[0] = "corrupted"
	assert.Equal(t, "lb-1", series[0].Labels[0])
	assert.Equal(t, "lb-1", series[2].Labels[0])
}

func TestExpandDateAdvancement(t *testing.T) {
	root := testRoot(&RepeatRule{Frequency: 3, Interval: IntervalDay, Count: 4})
	series, err := Expand(root)
	require.NoError(t, err)

	for i, ev := range series {
		wantStart := root.StartTime.AddDate(0, 0, 3*i)
		assert.True(t, ev.StartTime.Equal(wantStart), "occurrence %d starts at %s, want %s", i, ev.StartTime, wantStart)
		assert.True(t, ev.EndTime.Equal(wantStart.Add(time.Hour)))
	}
}

func TestExpandNoRulePassthrough(t *testing.T) {
	root := testRoot(nil)
	series, err := Expand(root)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, series[0].Equals(root))
}

func TestExpandZeroCountRetainsRule(t *testing.T) {
	root := testRoot(&RepeatRule{Frequency: 1, Interval: IntervalMonth, Count: 0})
	series, err := Expand(root)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.NotNil(t, series[0].Repeat, "a zero count series keeps the rule on its single instance")
	assert.Equal(t, *root.Repeat, *series[0].Repeat)
}

func TestExpandInvalidRule(t *testing.T) {
	tests := []RepeatRule{
		{Frequency: 0, Interval: IntervalDay, Count: 3},
		{Frequency: -1, Interval: IntervalWeek, Count: 3},
		{Frequency: 1, Interval: IntervalDay, Count: -1},
		{Frequency: 1, Interval: "fortnight", Count: 3},
	}
	for _, rule := range tests {
		root := testRoot(&rule)
		_, err := Expand(root)
		require.Error(t, err, "rule %+v", rule)
		invalid := new(InvalidRuleError)
		assert.True(t, errors.As(err, &invalid), "rule %+v should fail with InvalidRuleError, got %T", rule, err)
	}
}

func TestAdvanceClampsMonthEnds(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		t    time.Time
		n    int
		by   Interval
		want time.Time
	}{
		{"jan 31 plus one month lands on feb 28", day(2025, time.January, 31), 1, IntervalMonth, day(2025, time.February, 28)},
		{"jan 31 plus one month in a leap year", day(2024, time.January, 31), 1, IntervalMonth, day(2024, time.February, 29)},
		{"jan 31 plus two months keeps the day", day(2025, time.January, 31), 2, IntervalMonth, day(2025, time.March, 31)},
		{"may 31 plus one month lands on jun 30", day(2025, time.May, 31), 1, IntervalMonth, day(2025, time.June, 30)},
		{"month advance across year end", day(2025, time.November, 15), 3, IntervalMonth, day(2026, time.February, 15)},
		{"feb 29 plus one year lands on feb 28", day(2024, time.February, 29), 1, IntervalYear, day(2025, time.February, 28)},
		{"feb 29 plus four years stays feb 29", day(2024, time.February, 29), 4, IntervalYear, day(2028, time.February, 29)},
		{"days are plain arithmetic", day(2025, time.January, 30), 3, IntervalDay, day(2025, time.February, 2)},
		{"weeks are seven days", day(2025, time.January, 1), 2, IntervalWeek, day(2025, time.January, 15)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Advance(tc.t, tc.n, tc.by)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}
