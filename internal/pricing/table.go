package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads pricing overrides from a YAML file on top of DefaultTable.
// An empty path returns the defaults unchanged.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read pricing config: %w", err)
	}

	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Table{}, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	for pkg, m := range override.PackageMultipliers {
		t.PackageMultipliers[pkg] = m
	}
	for tier, p := range override.TierPercents {
		t.TierPercents[tier] = p
	}
	if override.ChildSharePercent != 0 {
		t.ChildSharePercent = override.ChildSharePercent
	}
	if override.DefaultTierPercent != 0 {
		t.DefaultTierPercent = override.DefaultTierPercent
	}
	if override.DefaultNightlyRate != 0 {
		t.DefaultNightlyRate = override.DefaultNightlyRate
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}
