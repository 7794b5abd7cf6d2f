package config

import (
	"fmt"
	"sort"
)

// Presets are named picker sections. Everything else keeps its default.
var Presets = map[string]PickerConfig{
	"minutes": {Min: 0, Max: 59, Value: 30, Items: 5, Wrap: true, Formatter: "two-digit"},
	"seconds": {Min: 0, Max: 59, Value: 0, Items: 5, Wrap: true, Formatter: "two-digit"},
	"hours":   {Min: 0, Max: 23, Value: 12, Items: 5, Wrap: true, Formatter: "two-digit"},
	"hours12": {Min: 1, Max: 12, Value: 12, Items: 5, Wrap: true, Formatter: "decimal"},
	"percent": {Min: 0, Max: 100, Value: 50, Items: 7, Wrap: false, Formatter: "decimal"},
	"year":    {Min: 1900, Max: 2100, Value: 2000, Items: 7, Wrap: false, Formatter: "decimal"},
	"weekday": {
		Min: 1, Max: 7, Value: 1, Items: 5, Wrap: true,
		Displayed: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	},
	// fewer values than slots, so the wheel refuses to wrap
	"compact":   {Min: 1, Max: 3, Value: 2, Items: 7, Wrap: true, Formatter: "decimal"},
	"countdown": {Min: 0, Max: 10, Value: 10, Items: 5, Wrap: false, Order: "descending", Formatter: "decimal"},
}

// GetPreset returns the default config with the named picker section.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	cfg.Picker = p
	if cfg.Picker.Orientation == "" {
		cfg.Picker.Orientation = "vertical"
	}
	if cfg.Picker.Order == "" {
		cfg.Picker.Order = "ascending"
	}
	if p.Displayed != nil {
		cfg.Picker.Displayed = append([]string(nil), p.Displayed...)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
