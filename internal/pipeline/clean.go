// Package pipeline turns raw show-week rows into the filtered table, the
// per-show aggregates and the top/bottom rankings shown by the explorer.
// Every operation is pure and total: malformed input degrades to defaults and
// empty input yields empty output.
package pipeline

import (
	"marquee/adapters/coercer"
	"marquee/domain/show"
)

// CleanStats counts what the cleaning pass did with the raw rows
type CleanStats struct {
	Input        int `json:"input"`
	Kept         int `json:"kept"`
	DroppedDates int `json:"dropped_dates"`
	ZeroedGross  int `json:"zeroed_gross"`
	ZeroedPerfs  int `json:"zeroed_performances"`
}

// Clean coerces raw rows into typed records. Rows whose date cannot be parsed
// are dropped; unparseable gross and performance values become 0.
func Clean(raw []show.RawRecord) []show.Record {
	records, _ := CleanWithStats(raw)
	return records
}

// CleanWithStats is Clean plus a tally of dropped and defaulted fields
func CleanWithStats(raw []show.RawRecord) ([]show.Record, CleanStats) {
	c := coercer.Default
	stats := CleanStats{Input: len(raw)}
	records := make([]show.Record, 0, len(raw))

	for _, r := range raw {
		date, ok := c.CoerceDate(r.Date)
		if !ok {
			stats.DroppedDates++
			continue
		}

		gross := c.CoerceAmount(r.WeeklyGross)
		if gross == 0 && !isZeroText(r.WeeklyGross) {
			stats.ZeroedGross++
		}
		perfs := c.CoerceCount(r.Performances)
		if perfs == 0 && !isZeroText(r.Performances) {
			stats.ZeroedPerfs++
		}

		records = append(records, show.Record{
			Date:         date,
			Show:         r.Show,
			WeeklyGross:  gross,
			Performances: perfs,
		})
	}

	stats.Kept = len(records)
	return records, stats
}

// isZeroText reports whether text legitimately spells a zero amount, so that
// "$0.00" is not counted as a coercion failure
func isZeroText(s string) bool {
	seen := false
	for _, r := range s {
		switch r {
		case '0':
			seen = true
		case '$', ',', '.', ' ', '-', '+':
		default:
			return false
		}
	}
	return seen
}
