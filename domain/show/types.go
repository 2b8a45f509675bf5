package show

import (
	"strconv"
	"time"
)

// AllShows is the show selector value meaning "no show filter"
const AllShows = "All shows"

// DisplayDateLayout renders record dates for the table (MM-DD-YYYY)
const DisplayDateLayout = "01-02-2006"

// ISODateLayout is used for query parameters and for re-serializing records
const ISODateLayout = "2006-01-02"

// RawRecord is one row as supplied by a data source, every field still text
type RawRecord struct {
	Date         string `json:"date" db:"week_date"`
	Show         string `json:"show" db:"show"`
	WeeklyGross  string `json:"weekly_gross" db:"weekly_gross"`
	Performances string `json:"performances" db:"performances"`
}

// Record is a cleaned row: a valid calendar date plus coerced numeric fields
type Record struct {
	Date         time.Time `json:"date"`
	Show         string    `json:"show"`
	WeeklyGross  float64   `json:"weekly_gross"`
	Performances float64   `json:"performances"`
}

// Raw renders a cleaned record back into source form. Cleaning the result
// yields the same record.
func (r Record) Raw() RawRecord {
	return RawRecord{
		Date:         r.Date.Format(ISODateLayout),
		Show:         r.Show,
		WeeklyGross:  strconv.FormatFloat(r.WeeklyGross, 'f', -1, 64),
		Performances: strconv.FormatFloat(r.Performances, 'f', -1, 64),
	}
}

// Aggregate holds per-show totals within a date window
type Aggregate struct {
	Show              string  `json:"show"`
	TotalPerformances float64 `json:"total_performances"`
	TotalGross        float64 `json:"total_gross"`
}

// Value returns the aggregate's value on the given metric
func (a Aggregate) Value(m Metric) float64 {
	if m == MetricGross {
		return a.TotalGross
	}
	return a.TotalPerformances
}

// RankedEntry is an Aggregate plus its 1-based position in a ranking
type RankedEntry struct {
	Rank int `json:"rank"`
	Aggregate
}

// Metric selects the ranking key
type Metric string

const (
	MetricPerformances Metric = "performances"
	MetricGross        Metric = "gross"
)

// Valid reports whether m is a known metric
func (m Metric) Valid() bool {
	return m == MetricPerformances || m == MetricGross
}

// Label is the selector label shown in the UI
func (m Metric) Label() string {
	if m == MetricGross {
		return "Total Gross (sum of weekly gross)"
	}
	return "Total Performances"
}

// AxisTitle is the chart value-axis title for the metric
func (m Metric) AxisTitle() string {
	if m == MetricGross {
		return "Total Gross Revenue (US$ thousands)"
	}
	return "Total Number of Performances"
}

// Direction selects top-N or bottom-N ranking
type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionTop || d == DirectionBottom
}

// Scale is a currency display unit
type Scale int

const (
	ScaleOnes Scale = iota
	ScaleThousands
	ScaleMillions
)

// Divisor returns the amount divisor for the scale
func (s Scale) Divisor() int64 {
	switch s {
	case ScaleThousands:
		return 1_000
	case ScaleMillions:
		return 1_000_000
	default:
		return 1
	}
}

// Suffix returns the unit suffix appended after the formatted value
func (s Scale) Suffix() string {
	switch s {
	case ScaleThousands:
		return "K"
	case ScaleMillions:
		return "M"
	default:
		return ""
	}
}

// Params is one set of user-chosen explorer parameters
type Params struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Show      string    `json:"show"`
	Metric    Metric    `json:"metric"`
	Direction Direction `json:"direction"`
	Limit     int       `json:"limit"`
}
