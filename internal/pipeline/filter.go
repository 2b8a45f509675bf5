package pipeline

import (
	"time"

	"marquee/domain/show"
)

// FilterByDate keeps records whose calendar date lies in [start, end].
// Times of day on the bounds are ignored. start > end yields no rows.
func FilterByDate(records []show.Record, start, end time.Time) []show.Record {
	lo, hi := calendarDay(start), calendarDay(end)
	out := make([]show.Record, 0, len(records))
	for _, r := range records {
		d := calendarDay(r.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByShow keeps records for exactly the named show. show.AllShows
// returns the input unchanged.
func FilterByShow(records []show.Record, name string) []show.Record {
	if name == show.AllShows {
		return records
	}
	out := make([]show.Record, 0)
	for _, r := range records {
		if r.Show == name {
			out = append(out, r)
		}
	}
	return out
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
