package pipeline

import (
	"sort"

	"marquee/domain/show"
)

// Rank orders aggregates by the selected metric and keeps the first limit.
//
// Top rankings sort descending over every aggregate. Bottom rankings first
// keep only aggregates whose metric value is positive, then sort ascending. Ties
// keep their input order.
func Rank(aggs []show.Aggregate, metric show.Metric, direction show.Direction, limit int) []show.RankedEntry {
	if limit <= 0 {
		return []show.RankedEntry{}
	}

	source := make([]show.Aggregate, 0, len(aggs))
	for _, a := range aggs {
		if direction == show.DirectionBottom && a.Value(metric) <= 0 {
			continue
		}
		source = append(source, a)
	}

	if direction == show.DirectionBottom {
		sort.SliceStable(source, func(i, j int) bool { return source[i].Value(metric) < source[j].Value(metric) })
	} else {
		sort.SliceStable(source, func(i, j int) bool { return source[i].Value(metric) > source[j].Value(metric) })
	}

	if len(source) > limit {
		source = source[:limit]
	}

	ranked := make([]show.RankedEntry, len(source))
	for i, a := range source {
		ranked[i] = show.RankedEntry{Rank: i + 1, Aggregate: a}
	}
	return ranked
}
