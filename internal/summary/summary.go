// Package summary computes descriptive statistics for a date window of
// show-week records.
package summary

import (
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"marquee/domain/show"
	"marquee/internal/pipeline"
)

// Summary describes one window of records
type Summary struct {
	Rows              int       `json:"rows"`
	Shows             int       `json:"shows"`
	FirstWeek         time.Time `json:"first_week"`
	LastWeek          time.Time `json:"last_week"`
	TotalGross        float64   `json:"total_gross"`
	TotalPerformances float64   `json:"total_performances"`
	MeanWeeklyGross   float64   `json:"mean_weekly_gross"`
	MedianWeeklyGross float64   `json:"median_weekly_gross"`
	P90WeeklyGross    float64   `json:"p90_weekly_gross"`
	StdDevWeeklyGross float64   `json:"stddev_weekly_gross"`
	MeanPerformances  float64   `json:"mean_performances"`
}

// Summarize computes window statistics. An empty window yields the zero Summary.
func Summarize(records []show.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	gross := make([]float64, len(records))
	perfs := make([]float64, len(records))
	s := Summary{Rows: len(records), FirstWeek: records[0].Date, LastWeek: records[0].Date}
	for i, r := range records {
		gross[i] = r.WeeklyGross
		perfs[i] = r.Performances
		if r.Date.Before(s.FirstWeek) {
			s.FirstWeek = r.Date
		}
		if r.Date.After(s.LastWeek) {
			s.LastWeek = r.Date
		}
	}

	s.Shows = len(pipeline.ShowNames(records))
	s.TotalGross = floats.Sum(gross)
	s.TotalPerformances = floats.Sum(perfs)
	s.MeanWeeklyGross = stat.Mean(gross, nil)
	s.MeanPerformances = stat.Mean(perfs, nil)
	if len(gross) > 1 {
		s.StdDevWeeklyGross = stat.StdDev(gross, nil)
	}

	// stats only errors on empty input, ruled out above
	s.MedianWeeklyGross, _ = stats.Median(gross)
	s.P90WeeklyGross, _ = stats.Percentile(gross, 90)

	return s
}

// Formatted returns the money fields rendered for display
func (s Summary) Formatted() map[string]string {
	return map[string]string{
		"total_gross":  pipeline.FormatCurrency(s.TotalGross, show.ScaleMillions),
		"mean_gross":   pipeline.FormatCurrency(s.MeanWeeklyGross, show.ScaleThousands),
		"median_gross": pipeline.FormatCurrency(s.MedianWeeklyGross, show.ScaleThousands),
		"p90_gross":    pipeline.FormatCurrency(s.P90WeeklyGross, show.ScaleThousands),
	}
}
