package pipeline

import (
	"sort"

	"marquee/domain/show"
)

// Aggregate sums performances and gross per distinct show name. Rows without
// a show name belong to no group. The result is ordered by show name, which is
// the order Rank falls back to on ties.
func Aggregate(records []show.Record) []show.Aggregate {
	index := make(map[string]int)
	aggs := make([]show.Aggregate, 0)

	for _, r := range records {
		if r.Show == "" {
			continue
		}
		i, ok := index[r.Show]
		if !ok {
			i = len(aggs)
			index[r.Show] = i
			aggs = append(aggs, show.Aggregate{Show: r.Show})
		}
		aggs[i].TotalPerformances += r.Performances
		aggs[i].TotalGross += r.WeeklyGross
	}

	sort.Slice(aggs, func(i, j int) bool { return aggs[i].Show < aggs[j].Show })
	return aggs
}

// ShowNames returns the sorted distinct show names present in records
func ShowNames(records []show.Record) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, r := range records {
		if r.Show == "" || seen[r.Show] {
			continue
		}
		seen[r.Show] = true
		names = append(names, r.Show)
	}
	sort.Strings(names)
	return names
}
