package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/wheelsim/internal/scroller"
	"github.com/san-kum/wheelsim/internal/wheel"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrUnknownFormat = errors.New("config: unknown format")
	ErrInvalid       = errors.New("config: invalid value")
)

const (
	DefaultElementSize = 40
	DefaultLabelSize   = 16
	DefaultFPS         = 60
	DefaultTheme       = "dark"
)

type Config struct {
	Picker  PickerConfig  `yaml:"picker" toml:"picker"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Gesture GestureConfig `yaml:"gesture" toml:"gesture"`
	Timing  TimingConfig  `yaml:"timing" toml:"timing"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
}

type PickerConfig struct {
	Min         int      `yaml:"min" toml:"min"`
	Max         int      `yaml:"max" toml:"max"`
	Value       int      `yaml:"value" toml:"value"`
	Items       int      `yaml:"items" toml:"items"`
	Wrap        bool     `yaml:"wrap" toml:"wrap"`
	Order       string   `yaml:"order" toml:"order"`
	Orientation string   `yaml:"orientation" toml:"orientation"`
	Formatter   string   `yaml:"formatter" toml:"formatter"`
	Displayed   []string `yaml:"displayed,omitempty" toml:"displayed,omitempty"`
}

type PhysicsConfig struct {
	Density      float64 `yaml:"density" toml:"density"`
	Friction     float64 `yaml:"friction" toml:"friction"`
	Interpolator string  `yaml:"interpolator" toml:"interpolator"`
}

type GestureConfig struct {
	TouchSlop         int   `yaml:"touch_slop" toml:"touch_slop"`
	MinFling          int   `yaml:"min_fling" toml:"min_fling"`
	MaxFling          int   `yaml:"max_fling" toml:"max_fling"`
	Coefficient       int   `yaml:"coefficient" toml:"coefficient"`
	LongPressTimeout  int64 `yaml:"long_press_timeout" toml:"long_press_timeout"`
	LongPressInterval int64 `yaml:"long_press_interval" toml:"long_press_interval"`
}

type TimingConfig struct {
	AdjustMs int `yaml:"adjust_ms" toml:"adjust_ms"`
	SnapMs   int `yaml:"snap_ms" toml:"snap_ms"`
}

// LayoutConfig sizes the headless wheel. A zero center puts the selected
// slot in the middle of a wheel that starts at 0.
type LayoutConfig struct {
	ElementSize int `yaml:"element_size" toml:"element_size"`
	LabelSize   int `yaml:"label_size" toml:"label_size"`
	Center      int `yaml:"center" toml:"center"`
}

type UIConfig struct {
	Theme string `yaml:"theme" toml:"theme"`
	FPS   int    `yaml:"fps" toml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			Min:         wheel.DefaultMinValue,
			Max:         wheel.DefaultMaxValue,
			Value:       wheel.DefaultMinValue,
			Items:       wheel.DefaultWheelItemCount,
			Wrap:        true,
			Order:       wheel.Ascending.String(),
			Orientation: wheel.Vertical.String(),
			Formatter:   "decimal",
		},
		Physics: PhysicsConfig{
			Density:      1,
			Friction:     scroller.DefaultFriction,
			Interpolator: "viscous",
		},
		Gesture: GestureConfig{
			TouchSlop:         wheel.DefaultTouchSlop,
			MinFling:          wheel.DefaultMinFlingVelocity,
			MaxFling:          wheel.DefaultMaxFlingVelocity,
			Coefficient:       wheel.DefaultMaxFlingVelocityCoefficient,
			LongPressTimeout:  wheel.DefaultLongPressTimeout,
			LongPressInterval: wheel.DefaultLongPressInterval,
		},
		Timing: TimingConfig{
			AdjustMs: wheel.SelectorAdjustmentDuration,
			SnapMs:   wheel.SnapScrollDuration,
		},
		Layout: LayoutConfig{
			ElementSize: DefaultElementSize,
			LabelSize:   DefaultLabelSize,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
			FPS:   DefaultFPS,
		},
	}
}

// Load reads a YAML file, or TOML when the extension is .toml, over the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, as TOML when the extension is .toml.
func Save(path string, cfg *Config) error {
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg as "yaml" or "toml".
func Encode(w io.Writer, cfg *Config, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Validate checks the named settings that cannot be expressed as numbers.
// Range problems are left to the picker.
func (c *Config) Validate() error {
	if _, err := parseOrder(c.Picker.Order); err != nil {
		return err
	}
	if _, err := parseOrientation(c.Picker.Orientation); err != nil {
		return err
	}
	if _, err := parseFormatter(c.Picker.Formatter); err != nil {
		return err
	}
	if c.Physics.Interpolator != "" {
		if _, err := scroller.GetInterpolator(c.Physics.Interpolator); err != nil {
			return err
		}
	}
	if c.Layout.ElementSize < 0 || c.Layout.LabelSize < 0 {
		return fmt.Errorf("%w: negative layout size", ErrInvalid)
	}
	return nil
}

// PickerConfig converts the file settings into a wheel configuration.
// Unrecognised names fall back to the wheel defaults; call Validate first
// to reject them.
func (c *Config) PickerConfig() wheel.Config {
	wc := wheel.DefaultConfig()
	wc.MinValue = c.Picker.Min
	wc.MaxValue = c.Picker.Max
	wc.Value = c.Picker.Value
	wc.WheelItemCount = c.Picker.Items
	wc.Wrap = c.Picker.Wrap
	wc.Order, _ = parseOrder(c.Picker.Order)
	wc.Orientation, _ = parseOrientation(c.Picker.Orientation)

	wc.Density = c.Physics.Density
	wc.Friction = c.Physics.Friction
	if c.Physics.Interpolator != "" {
		wc.Interpolator, _ = scroller.GetInterpolator(c.Physics.Interpolator)
	}

	g := c.Gesture
	setIfPositive(&wc.TouchSlop, g.TouchSlop)
	setIfPositive(&wc.MinFlingVelocity, g.MinFling)
	setIfPositive(&wc.MaxFlingVelocity, g.MaxFling)
	setIfPositive(&wc.MaxFlingVelocityCoefficient, g.Coefficient)
	if g.LongPressTimeout > 0 {
		wc.LongPressTimeout = g.LongPressTimeout
	}
	if g.LongPressInterval > 0 {
		wc.LongPressInterval = g.LongPressInterval
	}
	setIfPositive(&wc.AdjustDuration, c.Timing.AdjustMs)
	setIfPositive(&wc.SnapDuration, c.Timing.SnapMs)
	return wc
}

// Formatter returns the label formatter named by the picker section.
func (c *Config) Formatter() wheel.Formatter {
	f, err := parseFormatter(c.Picker.Formatter)
	if err != nil {
		return wheel.DecimalFormatter
	}
	return f
}

// NewPicker builds and lays out a picker from the config.
func (c *Config) NewPicker(env wheel.Env) (*wheel.Picker, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := wheel.New(c.PickerConfig(), env)
	if err != nil {
		return nil, err
	}
	p.SetFormatter(c.Formatter())
	if len(c.Picker.Displayed) > 0 {
		p.SetDisplayedValues(c.Picker.Displayed)
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	es, ls, center := c.LayoutSizes(p.MiddleIndex())
	p.Layout(es, ls, center)
	return p, nil
}

// LayoutSizes returns the element size, label size and center for a wheel
// whose selected slot is middle.
func (c *Config) LayoutSizes(middle int) (element, label, center int) {
	element = c.Layout.ElementSize
	if element <= 0 {
		element = DefaultElementSize
	}
	label = c.Layout.LabelSize
	center = c.Layout.Center
	if center == 0 {
		center = middle*element + element/2
	}
	return element, label, center
}

func setIfPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func parseOrder(s string) (wheel.Order, error) {
	switch strings.ToLower(s) {
	case "", "ascending", "asc":
		return wheel.Ascending, nil
	case "descending", "desc":
		return wheel.Descending, nil
	}
	return wheel.Ascending, fmt.Errorf("%w: order %q", ErrInvalid, s)
}

func parseOrientation(s string) (wheel.Orientation, error) {
	switch strings.ToLower(s) {
	case "", "vertical":
		return wheel.Vertical, nil
	case "horizontal":
		return wheel.Horizontal, nil
	}
	return wheel.Vertical, fmt.Errorf("%w: orientation %q", ErrInvalid, s)
}

func parseFormatter(s string) (wheel.Formatter, error) {
	switch strings.ToLower(s) {
	case "", "decimal":
		return wheel.DecimalFormatter, nil
	case "two-digit":
		return wheel.FormatterFunc(func(v int) string { return fmt.Sprintf("%02d", v) }), nil
	case "hex":
		return wheel.FormatterFunc(func(v int) string { return fmt.Sprintf("%X", v) }), nil
	}
	return nil, fmt.Errorf("%w: formatter %q", ErrInvalid, s)
}
