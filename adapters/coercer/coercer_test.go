package coercer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceDate(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	want := time.Date(2021, time.January, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"iso date", "2021-01-08", true},
		{"iso datetime", "2021-01-08 19:30:00", true},
		{"rfc3339 with offset", "2021-01-08T23:30:00-05:00", true},
		{"us slashes", "1/8/2021", true},
		{"us slashes padded", "01/08/2021", true},
		{"short year", "1/8/21", true},
		{"month name", "Jan 8, 2021", true},
		{"long month name", "January 8, 2021", true},
		{"day first month name", "8 Jan 2021", true},
		{"display format", "01-08-2021", true},
		{"display format short year", "01-08-21", true},
		{"short year with time", "1/8/21 19:30", true},
		{"surrounding space", "  2021-01-08 ", true},
		{"garbage", "not-a-date", false},
		{"empty", "", false},
		{"impossible day", "2021-02-30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.CoerceDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, want.Equal(got), "got %s", got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		input string
		want  float64
	}{
		{"$1,234.50", 1234.50},
		{"$12,345.67", 12345.67},
		{"$0.00", 0},
		{"1000", 1000},
		{"-$50.00", -50},
		{"$-50.00", -50},
		{" $7 ", 7},
		{"N/A", 0},
		{"", 0},
		{"nan", 0},
		{"inf", 0},
		{"0x1p3", 0},
		{"(1,234)", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.CoerceAmount(tt.input), "input %q", tt.input)
	}
}

func TestCoerceCount(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	assert.Equal(t, 8.0, c.CoerceCount("8"))
	assert.Equal(t, 8.0, c.CoerceCount("8.0"))
	assert.Equal(t, 0.0, c.CoerceCount("eight"))
	assert.Equal(t, 0.0, c.CoerceCount(""))
	// thousands separators are only stripped from currency text
	assert.Equal(t, 0.0, c.CoerceCount("1,200"))
}
