package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeCoercer converts raw text cells into typed values. Every method is total:
// failures are reported through a boolean or a zero default, never an error.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the accepted date layouts and the characters stripped
// from currency text before numeric parsing
type CoercionConfig struct {
	DateLayouts    []string `json:"date_layouts"`
	CurrencyStrips []string `json:"currency_strips"`
}

// DefaultCoercionConfig returns the permissive calendar-date layouts and the
// "$" / "," currency strip set
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"2006-1-2",
			"2006/01/02",
			"2006/1/2",
			"1/2/2006",
			"1/2/2006 15:04",
			"1/2/2006 15:04:05",
			"1/2/06",
			"1/2/06 15:04",
			"01-02-2006",
			"1-2-2006",
			"01-02-06",
			"1-2-06",
			"Jan 2, 2006",
			"January 2, 2006",
			"Jan 2 2006",
			"January 2 2006",
			"2 Jan 2006",
			"2 January 2006",
			"02-Jan-2006",
			"2-Jan-06",
			"20060102",
		},
		CurrencyStrips: []string{"$", ","},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Default is the coercer used by the cleaning pipeline
var Default = NewTypeCoercer(DefaultCoercionConfig())

// CoerceDate parses a calendar date. The time of day, if present, is dropped
// and the result is midnight UTC of the date as written.
func (c *TypeCoercer) CoerceDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// CoerceAmount strips currency characters and parses a decimal amount.
// Unparseable input yields 0.
func (c *TypeCoercer) CoerceAmount(raw string) float64 {
	s := raw
	for _, strip := range c.config.CurrencyStrips {
		s = strings.ReplaceAll(s, strip, "")
	}
	return parseNumber(s)
}

// CoerceCount parses a numeric count. Unparseable input yields 0.
func (c *TypeCoercer) CoerceCount(raw string) float64 {
	return parseNumber(raw)
}

// parseNumber accepts plain decimal notation with an optional sign and
// exponent. Hex floats, infinities and NaN are rejected.
func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || !isDecimalText(s) {
		return 0
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0
	}
	return val
}

func isDecimalText(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return digits > 0
}
