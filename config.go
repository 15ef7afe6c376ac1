package sprout

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Assignment maps trigger elements to a variant. An element matches when its
// kind equals Kind (if set) and its title contains Match (if set).
type Assignment struct {
	Match   string `yaml:"match"`
	Kind    string `yaml:"kind"`
	Variant string `yaml:"variant"`
}

// Matches reports whether an element of kind with title satisfies a.
func (a Assignment) Matches(kind ElementKind, title string) bool {
	if a.Kind != "" && !strings.EqualFold(a.Kind, kind.String()) {
		return false
	}
	if a.Match != "" && !strings.Contains(title, a.Match) {
		return false
	}
	return true
}

// Config is the contents of sprout.yaml.
type Config struct {
	Window      WindowConfig `yaml:"window"`
	ContentDir  string       `yaml:"content_dir"`
	Seed        uint64       `yaml:"seed"`
	Debug       bool         `yaml:"debug"`
	LogLevel    string       `yaml:"log_level"`
	MetricsAddr string       `yaml:"metrics_addr"`
	ScrollSpeed float64      `yaml:"scroll_speed"`

	// Assign is evaluated in order; the first matching rule wins.
	Assign []Assignment `yaml:"assign"`

	// Variants holds partial overrides keyed by variant name. A name that is
	// not a preset defines a new variant and must set "base".
	Variants map[string]map[string]any `yaml:"variants"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Window:      WindowConfig{Title: "sprout", Width: 1280, Height: 800},
		ContentDir:  "content",
		LogLevel:    "info",
		ScrollSpeed: 40,
		Assign: []Assignment{
			{Match: "GeoCommunity", Kind: "card", Variant: "skyline"},
			{Match: "Kwiatownik", Kind: "card", Variant: "organic"},
			{Kind: "link", Variant: "circuit-menu"},
			{Variant: "circuit"},
		},
	}
}

// LoadConfig reads path and applies it over DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// BuildVariants returns the presets with every override applied. Overrides
// only replace the fields they name.
func (c Config) BuildVariants() (map[string]*Variant, error) {
	presets := Presets()
	out := make(map[string]*Variant, len(presets)+len(c.Variants))
	for name, v := range presets {
		v := v
		out[name] = &v
	}
	for name, raw := range c.Variants {
		v, err := c.overrideVariant(name, raw, presets)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	for _, a := range c.Assign {
		if _, ok := out[a.Variant]; !ok {
			return nil, fmt.Errorf("assign %q: %w: %q", a.Match, ErrUnknownVariant, a.Variant)
		}
	}
	return out, nil
}

func (c Config) overrideVariant(name string, raw map[string]any, presets map[string]Variant) (*Variant, error) {
	fields := make(map[string]any, len(raw))
	for k, val := range raw {
		fields[k] = val
	}

	baseName := name
	if b, ok := fields["base"].(string); ok {
		baseName = b
	}
	delete(fields, "base")
	base, ok := presets[baseName]
	if !ok {
		return nil, fmt.Errorf("variant %q: %w: %q", name, ErrUnknownVariant, baseName)
	}
	v := base
	v.Name = name
	v.Angles = append([]float64(nil), base.Angles...)

	if s, ok := fields["color"].(string); ok {
		col, err := ParseHexColor(s)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		v.Color = col
		delete(fields, "color")
	}
	if _, ok := fields["angles"]; ok {
		v.Angles = nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(fields); err != nil {
		return nil, fmt.Errorf("variant %q: %w", name, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// VariantFor returns the variant of the first assignment matching kind and
// title, or nil.
func (c Config) VariantFor(variants map[string]*Variant, kind ElementKind, title string) *Variant {
	for _, a := range c.Assign {
		if a.Matches(kind, title) {
			return variants[a.Variant]
		}
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		n = n<<8 | 0xff
	}
	return Color{
		R: float64(n>>24&0xff) / 255,
		G: float64(n>>16&0xff) / 255,
		B: float64(n>>8&0xff) / 255,
		A: float64(n&0xff) / 255,
	}, nil
}
