package excel

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnMap names the source headers holding each record field
type ColumnMap struct {
	Date         string `yaml:"date" json:"date"`
	Show         string `yaml:"show" json:"show"`
	Gross        string `yaml:"gross" json:"gross"`
	Performances string `yaml:"performances" json:"performances"`
}

// DefaultColumnMap returns the headers of the Broadway grosses export
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Date:         "WEEK DATE",
		Show:         "SHOW",
		Gross:        "THIS WEEK GROSS",
		Performances: "PERFORMANCES",
	}
}

// LoadColumnMap reads a YAML column mapping and overlays it on the defaults.
// An empty path returns the defaults.
func LoadColumnMap(path string) (ColumnMap, error) {
	columns := DefaultColumnMap()
	if path == "" {
		return columns, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from configuration
	if err != nil {
		return columns, fmt.Errorf("failed to read column mapping: %w", err)
	}

	var overlay ColumnMap
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return columns, fmt.Errorf("failed to parse column mapping %s: %w", path, err)
	}

	if v := strings.TrimSpace(overlay.Date); v != "" {
		columns.Date = v
	}
	if v := strings.TrimSpace(overlay.Show); v != "" {
		columns.Show = v
	}
	if v := strings.TrimSpace(overlay.Gross); v != "" {
		columns.Gross = v
	}
	if v := strings.TrimSpace(overlay.Performances); v != "" {
		columns.Performances = v
	}
	return columns, nil
}
