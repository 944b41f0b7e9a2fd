package calendar

import "time"

// Expand materializes the series described by the root's repeat rule.
//
// The result holds Count+1 events: the root itself at index 0, unmodified,
// followed by one copy per occurrence with a fresh id, the root's id as
// parent, the rule cleared and both dates advanced by i*Frequency intervals.
// A root without a rule comes back alone, untouched; a rule with Count 0
// produces only the root but keeps the rule on it, so a later edit can still
// re-expand it.
func Expand(root Event) (Events, error) {
	if root.Repeat == nil {
		return Events{root}, nil
	}
	rule := *root.Repeat
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	series := make(Events, 0, rule.Count+1)
	series = append(series, root)
	for i := 1; i <= rule.Count; i++ {
		child := root.Clone()
		child.ID = NewID()
		child.ParentID = root.ID
		child.Repeat = nil
		child.StartTime = Advance(root.StartTime, i*rule.Frequency, rule.Interval)
		child.EndTime = Advance(root.EndTime, i*rule.Frequency, rule.Interval)
		series = append(series, child)
	}
	return series, nil
}

// Advance moves t forward by n intervals. Month and year steps clamp to the
// last valid day of the target month, so Jan 31 plus one month is Feb 28 (or
// 29), not an overflow into March.
func Advance(t time.Time, n int, by Interval) time.Time {
	switch by {
	case IntervalDay:
		return t.AddDate(0, 0, n)
	case IntervalWeek:
		return t.AddDate(0, 0, 7*n)
	case IntervalMonth:
		return addMonths(t, n)
	case IntervalYear:
		return addMonths(t, 12*n)
	}
	return t
}

func addMonths(t time.Time, n int) time.Time {
	// anchored on day 1, AddDate can't overflow into the next month
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, n, 0)
	day := t.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
