package pipeline

import (
	"time"

	"marquee/domain/show"
)

// ChartBarHeight is the pixel height allotted to each bar of the ranking chart
const ChartBarHeight = 30

const (
	noteBottomGross = "Note: Bottom gross rankings exclude shows with total gross equal to zero " +
		"within the selected timeframe to avoid including inactive or closed productions."
	noteBottomPerformances = "Note: Bottom performance rankings exclude shows with total performances equal to zero " +
		"within the selected timeframe to avoid including inactive or closed productions."
)

// TableRow is one filtered record ready for display
type TableRow struct {
	Date         string  `json:"date"`
	Show         string  `json:"show"`
	WeeklyGross  float64 `json:"weekly_gross"`
	Performances float64 `json:"performances"`
}

// Table is the display table for the current date window and show filter
type Table struct {
	Show     string     `json:"show"`
	RowCount int        `json:"row_count"`
	Rows     []TableRow `json:"rows"`
}

// ChartBar is one bar of the ranking chart
type ChartBar struct {
	Show  string  `json:"show"`
	Value float64 `json:"value"`
}

// Chart is everything a bar-chart renderer needs
type Chart struct {
	XAxisTitle string     `json:"x_axis_title"`
	YAxisTitle string     `json:"y_axis_title"`
	Height     int        `json:"height"`
	Bars       []ChartBar `json:"bars"`
}

// MaxValue returns the largest bar value, or 0 for an empty chart
func (c Chart) MaxValue() float64 {
	m := 0.0
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

// RankingRow is a ranked entry with its gross pre-formatted at every scale
type RankingRow struct {
	show.RankedEntry
	Gross  string `json:"gross_display"`
	GrossK string `json:"gross_k_display"`
	GrossM string `json:"gross_m_display"`
}

// Window describes the dataset's date bounds and the active range
type Window struct {
	Min   time.Time `json:"min"`
	Max   time.Time `json:"max"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Report is the complete explorer output for one parameter set
type Report struct {
	Params  show.Params  `json:"params"`
	Window  Window       `json:"window"`
	Shows   []string     `json:"shows"`
	Table   Table        `json:"table"`
	Chart   Chart        `json:"chart"`
	Ranking []RankingRow `json:"ranking"`
	Note    string       `json:"note,omitempty"`
}

// Explore runs the pipeline for one parameter set over cleaned records.
// The show filter only narrows the table; rankings always cover every show
// in the date window.
func Explore(records []show.Record, minDate, maxDate time.Time, p show.Params) Report {
	inWindow := FilterByDate(records, p.Start, p.End)

	ranked := Rank(Aggregate(inWindow), p.Metric, p.Direction, p.Limit)

	return Report{
		Params:  p,
		Window:  Window{Min: minDate, Max: maxDate, Start: p.Start, End: p.End},
		Shows:   append([]string{show.AllShows}, ShowNames(inWindow)...),
		Table:   BuildTable(FilterByShow(inWindow, p.Show), p.Show),
		Chart:   BuildChart(ranked, p.Metric),
		Ranking: BuildRanking(ranked),
		Note:    RankingNote(p.Metric, p.Direction),
	}
}

// BuildTable renders records for display with MM-DD-YYYY dates
func BuildTable(records []show.Record, selected string) Table {
	rows := make([]TableRow, len(records))
	for i, r := range records {
		rows[i] = TableRow{
			Date:         r.Date.Format(show.DisplayDateLayout),
			Show:         r.Show,
			WeeklyGross:  r.WeeklyGross,
			Performances: r.Performances,
		}
	}
	return Table{Show: selected, RowCount: len(rows), Rows: rows}
}

// BuildChart produces the bar series for a ranking. Gross values are
// rescaled to thousands to match the axis title.
func BuildChart(ranked []show.RankedEntry, metric show.Metric) Chart {
	bars := make([]ChartBar, len(ranked))
	for i, e := range ranked {
		v := e.Value(metric)
		if metric == show.MetricGross {
			v = v / 1_000
		}
		bars[i] = ChartBar{Show: e.Show, Value: v}
	}
	return Chart{
		XAxisTitle: metric.AxisTitle(),
		YAxisTitle: "Show",
		Height:     ChartBarHeight * len(bars),
		Bars:       bars,
	}
}

// BuildRanking attaches formatted gross strings to each ranked entry
func BuildRanking(ranked []show.RankedEntry) []RankingRow {
	rows := make([]RankingRow, len(ranked))
	for i, e := range ranked {
		rows[i] = RankingRow{
			RankedEntry: e,
			Gross:       FormatCurrency(e.TotalGross, show.ScaleOnes),
			GrossK:      FormatCurrency(e.TotalGross, show.ScaleThousands),
			GrossM:      FormatCurrency(e.TotalGross, show.ScaleMillions),
		}
	}
	return rows
}

// RankingNote returns the caption explaining zero-exclusion for bottom
// rankings, or "" for top rankings
func RankingNote(metric show.Metric, direction show.Direction) string {
	if direction != show.DirectionBottom {
		return ""
	}
	if metric == show.MetricGross {
		return noteBottomGross
	}
	return noteBottomPerformances
}
