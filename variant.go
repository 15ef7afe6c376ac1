package sprout

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownVariant is returned when a variant name is not registered.
var ErrUnknownVariant = errors.New("sprout: unknown variant")

// Family groups variants that share a look. Only one family may own the
// surface at a time.
type Family uint8

const (
	FamilyCircuit Family = iota // grid-snapped traces with pulses
	FamilyOrganic               // roots, branches and vines with leaves
	FamilySkyline               // buildings growing out of the element edges
)

var familyNames = [...]string{"circuit", "organic", "skyline"}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "family?"
}

// Mode selects the growth algorithm.
type Mode uint8

const (
	// ModeBranch searches grid-aligned branching paths around obstacles.
	ModeBranch Mode = iota
	// ModeStalk grows one straight stalk per seed and freezes it on contact.
	ModeStalk
)

func (m Mode) String() string {
	if m == ModeStalk {
		return "stalk"
	}
	return "branch"
}

// AngleOrder selects how candidate turn angles are ordered.
type AngleOrder uint8

const (
	OrderDeviation AngleOrder = iota // smallest deviation from straight first
	OrderShuffle                     // full random shuffle
	OrderMixed                       // deviation with probability DeviationBias, else shuffle
)

// StalkConfig holds the skyline constants.
type StalkConfig struct {
	Height     Range   `yaml:"height" mapstructure:"height"`
	SideHeight Range   `yaml:"side_height" mapstructure:"side_height"`
	Width      Range   `yaml:"width" mapstructure:"width"`
	SideWidth  Range   `yaml:"side_width" mapstructure:"side_width"`
	Speed      Range   `yaml:"speed" mapstructure:"speed"`
	Margin     float64 `yaml:"margin" mapstructure:"margin"`
	EdgeMargin float64 `yaml:"edge_margin" mapstructure:"edge_margin"`
	Jitter     float64 `yaml:"jitter" mapstructure:"jitter"`
	DoorChance float64 `yaml:"door_chance" mapstructure:"door_chance"`
	Hue        Range   `yaml:"hue" mapstructure:"hue"`
}

// Variant is a growth policy: how seeds are placed, which directions are
// tried and in what order, how often paths fork, what a collision does, and
// the constants the renderer uses. Variants are plain configuration.
type Variant struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Family    Family `yaml:"-" mapstructure:"-"`
	Mode      Mode   `yaml:"-" mapstructure:"-"`
	Exclusive bool   `yaml:"exclusive" mapstructure:"exclusive"`

	Grid        float64 `yaml:"grid" mapstructure:"grid"`
	Length      Range   `yaml:"length" mapstructure:"length"`
	SampleSteps int     `yaml:"sample_steps" mapstructure:"sample_steps"`

	// Angles are candidate turns in degrees relative to the heading.
	Angles          []float64  `yaml:"angles" mapstructure:"angles"`
	Order           AngleOrder `yaml:"order" mapstructure:"order"`
	DeviationBias   float64    `yaml:"deviation_bias" mapstructure:"deviation_bias"`
	SplitChance     float64    `yaml:"split_chance" mapstructure:"split_chance"`
	RootSplitChance float64    `yaml:"root_split_chance" mapstructure:"root_split_chance"`
	ForkTurn        float64    `yaml:"fork_turn" mapstructure:"fork_turn"`
	MaxDepth        int        `yaml:"max_depth" mapstructure:"max_depth"`
	// RootMaxDepth replaces MaxDepth for bottom-edge seeds when set.
	RootMaxDepth int `yaml:"root_max_depth" mapstructure:"root_max_depth"`

	Density    float64 `yaml:"density" mapstructure:"density"`
	SeedOffset float64 `yaml:"seed_offset" mapstructure:"seed_offset"`
	SeedJitter float64 `yaml:"seed_jitter" mapstructure:"seed_jitter"`
	SelfMargin float64 `yaml:"self_margin" mapstructure:"self_margin"`
	// TopGuard rejects endpoints closer than this to the viewport top.
	// Zero disables the guard.
	TopGuard float64 `yaml:"top_guard" mapstructure:"top_guard"`

	Clearance Clearance `yaml:"clearance" mapstructure:"clearance"`
	Obstacles KindMask  `yaml:"-" mapstructure:"-"`

	Rate        float64 `yaml:"rate" mapstructure:"rate"`
	PulseChance float64 `yaml:"pulse_chance" mapstructure:"pulse_chance"`
	PulseSpeed  Range   `yaml:"pulse_speed" mapstructure:"pulse_speed"`

	Color      Color      `yaml:"-" mapstructure:"-"`
	Width      float64    `yaml:"width" mapstructure:"width"`
	WidthStep  float64    `yaml:"width_step" mapstructure:"width_step"`
	MinWidth   float64    `yaml:"min_width" mapstructure:"min_width"`
	Taper      float64    `yaml:"taper" mapstructure:"taper"`
	EdgeWidths [4]float64 `yaml:"edge_widths" mapstructure:"edge_widths"`
	DotRadius  float64    `yaml:"dot_radius" mapstructure:"dot_radius"`

	Stalk StalkConfig `yaml:"stalk" mapstructure:"stalk"`
}

// strokeWidth returns the line width for a segment at depth.
func (v *Variant) strokeWidth(seg *Segment) float64 {
	if v.Family == FamilyOrganic {
		w := v.EdgeWidths[seg.Edge]
		if w == 0 {
			w = v.Width
		}
		w *= math.Pow(v.Taper, float64(seg.Depth))
		return math.Max(v.MinWidth, w)
	}
	return math.Max(v.MinWidth, v.Width-float64(seg.Depth)*v.WidthStep)
}

// Validate reports configuration that would make growth misbehave.
func (v *Variant) Validate() error {
	switch {
	case v.Name == "":
		return errors.New("sprout: variant has no name")
	case v.Mode == ModeBranch && v.Grid <= 0:
		return fmt.Errorf("sprout: variant %q: grid must be positive", v.Name)
	case v.Mode == ModeBranch && len(v.Angles) == 0:
		return fmt.Errorf("sprout: variant %q: no candidate angles", v.Name)
	case v.MaxDepth > maxDepthLimit:
		return fmt.Errorf("sprout: variant %q: max depth %d exceeds %d", v.Name, v.MaxDepth, maxDepthLimit)
	case v.RootMaxDepth > maxDepthLimit:
		return fmt.Errorf("sprout: variant %q: root max depth %d exceeds %d", v.Name, v.RootMaxDepth, maxDepthLimit)
	case v.Density <= 0:
		return fmt.Errorf("sprout: variant %q: density must be positive", v.Name)
	case v.Rate <= 0 && v.Mode == ModeBranch:
		return fmt.Errorf("sprout: variant %q: rate must be positive", v.Name)
	}
	return nil
}

// maxDepthLimit bounds the synchronous search done at growth start.
const maxDepthLimit = 10

var (
	neonCyan = Color{0, 0.953, 1, 1}
	barkRoot = ColorRGB(80, 55, 45)
)

// Presets returns fresh copies of the built-in variants keyed by name.
func Presets() map[string]Variant {
	circuit := Variant{
		Name:          "circuit",
		Family:        FamilyCircuit,
		Mode:          ModeBranch,
		Grid:          6,
		Length:        Range{2, 5},
		Angles:        []float64{0, 45, -45, 90, -90},
		Order:         OrderMixed,
		DeviationBias: 0.8,
		SplitChance:   0.35,
		ForkTurn:      45,
		MaxDepth:      5,
		Density:       65,
		SeedOffset:    2,
		SeedJitter:    0.33,
		SelfMargin:    5,
		Clearance:     Clearance{Default: 4, Heading: 10},
		Rate:          0.2,
		PulseChance:   0.02,
		PulseSpeed:    Range{0.04, 0.08},
		Color:         neonCyan,
		Width:         1.4,
		WidthStep:     0.2,
		MinWidth:      0.4,
		DotRadius:     1,
	}

	menu := circuit
	menu.Name = "circuit-menu"
	menu.Angles = append([]float64(nil), circuit.Angles...)
	menu.Length = Range{1, 2}
	menu.SplitChance = 0.25
	menu.MaxDepth = 4
	menu.Density = 40
	menu.SelfMargin = 2
	menu.TopGuard = 5

	trace := circuit
	trace.Name = "trace"
	trace.Angles = append([]float64(nil), circuit.Angles...)
	trace.Grid = 5
	trace.Length = Range{1, 3}
	trace.SampleSteps = 4
	trace.Order = OrderDeviation
	trace.SplitChance = 0.5
	trace.MaxDepth = 6
	trace.Density = 45
	trace.SeedOffset = 1
	trace.SelfMargin = 3
	trace.Clearance = Clearance{Default: 2, Heading: 2}
	trace.PulseChance = 0
	trace.Width = 1.6
	trace.WidthStep = 0.25
	trace.DotRadius = 0.8

	rigid := circuit
	rigid.Name = "rigid"
	rigid.Grid = 8
	rigid.Length = Range{1, 2}
	rigid.Angles = []float64{0, 45, -45}
	rigid.Order = OrderShuffle
	rigid.SplitChance = 0.4
	rigid.MaxDepth = 4
	rigid.Density = 50
	rigid.SeedOffset = 0
	rigid.SelfMargin = 0
	rigid.Rate = 0.1
	rigid.PulseChance = 0
	rigid.Width = 1.8
	rigid.WidthStep = 0.3
	rigid.MinWidth = 0.5

	organic := Variant{
		Name:            "organic",
		Family:          FamilyOrganic,
		Mode:            ModeBranch,
		Exclusive:       true,
		Grid:            4,
		Length:          Range{2, 6},
		Angles:          []float64{0, 45, -45, 90, -90},
		Order:           OrderShuffle,
		SplitChance:     0.4,
		RootSplitChance: 0.6,
		ForkTurn:        45,
		MaxDepth:        7,
		RootMaxDepth:    8,
		Density:         40,
		SeedOffset:      -4,
		SeedJitter:      0.3,
		SelfMargin:      6,
		Obstacles:       MaskOf(KindCard),
		Rate:            0.15,
		Color:           ColorRGB(60, 140, 40),
		Width:           3.5,
		MinWidth:        0.6,
		Taper:           0.7,
		EdgeWidths:      [4]float64{5.5, 3.5, 3.5, 2.5},
	}

	skyline := Variant{
		Name:      "skyline",
		Family:    FamilySkyline,
		Mode:      ModeStalk,
		Exclusive: true,
		Density:   35,
		Obstacles: MaskOf(KindCard),
		Color:     neonCyan,
		Width:     1.2,
		Stalk: StalkConfig{
			Height:     Range{30, 80},
			SideHeight: Range{15, 35},
			Width:      Range{15, 40},
			SideWidth:  Range{10, 22},
			Speed:      Range{1.0, 2.5},
			Margin:     5,
			EdgeMargin: 15,
			Jitter:     5,
			DoorChance: 0.8,
			Hue:        Range{190, 210},
		},
	}

	return map[string]Variant{
		circuit.Name: circuit,
		menu.Name:    menu,
		trace.Name:   trace,
		rigid.Name:   rigid,
		organic.Name: organic,
		skyline.Name: skyline,
	}
}

// Preset returns a copy of the named built-in variant.
func Preset(name string) (Variant, error) {
	v, ok := Presets()[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}
