package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/keepyuppy/balloon"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BalloonSpec is the yaml form of the balloon tuning. Fields left out of the
// file keep their reference values.
type BalloonSpec struct {
	Name          string      `yaml:"name"`
	Radius        float64     `yaml:"radius"`
	Gravity       float64     `yaml:"gravity"`
	AirResistance float64     `yaml:"air_resistance"`
	BounceDamping float64     `yaml:"bounce_damping"`
	MaxVelocity   float64     `yaml:"max_velocity"`
	GroundMargin  float64     `yaml:"ground_margin"`
	ResetSpeedX   float64     `yaml:"reset_speed_x"`
	Hit           HitSpec     `yaml:"hit"`
	Wobble        WobbleSpec  `yaml:"wobble"`
	Gust          GustSpec    `yaml:"gust"`
	Contact       ContactSpec `yaml:"contact"`
	Palette       PaletteSpec `yaml:"palette"`
}

type HitSpec struct {
	Force         float64 `yaml:"force"`
	UpwardBias    float64 `yaml:"upward_bias"`
	MinUpward     float64 `yaml:"min_upward"`
	FollowThrough float64 `yaml:"follow_through"`
}

type WobbleSpec struct {
	Speed     float64 `yaml:"speed"`
	Amplitude float64 `yaml:"amplitude"`
}

type GustSpec struct {
	IntervalMin float64 `yaml:"interval_min"`
	IntervalMax float64 `yaml:"interval_max"`
	StrengthMin float64 `yaml:"strength_min"`
	StrengthMax float64 `yaml:"strength_max"`
	DurationMin float64 `yaml:"duration_min"`
	DurationMax float64 `yaml:"duration_max"`
	Tilt        float64 `yaml:"tilt"`
}

type ContactSpec struct {
	Radius    float64 `yaml:"radius"`
	Smoothing float64 `yaml:"smoothing"`
}

type PaletteSpec struct {
	Sky     *YAMLColor `yaml:"sky"`
	Ground  *YAMLColor `yaml:"ground"`
	Balloon *YAMLColor `yaml:"balloon"`
	Outline *YAMLColor `yaml:"outline"`
	Contact *YAMLColor `yaml:"contact"`
	Wind    *YAMLColor `yaml:"wind"`
}

// DefaultBalloonSpec mirrors balloon.DefaultTuning.
func DefaultBalloonSpec() BalloonSpec {
	t := balloon.DefaultTuning()
	return BalloonSpec{
		Name:          "balloon",
		Radius:        t.Radius,
		Gravity:       t.Gravity,
		AirResistance: t.AirResistance,
		BounceDamping: t.BounceDamping,
		MaxVelocity:   t.MaxVelocity,
		GroundMargin:  t.GroundMargin,
		ResetSpeedX:   t.ResetSpeedX,
		Hit: HitSpec{
			Force:         t.HitForce,
			UpwardBias:    t.HitUpwardBias,
			MinUpward:     t.HitMinUpward,
			FollowThrough: t.FollowThrough,
		},
		Wobble: WobbleSpec{Speed: t.WobbleSpeed, Amplitude: t.WobbleAmplitude},
		Gust: GustSpec{
			IntervalMin: t.GustIntervalMin,
			IntervalMax: t.GustIntervalMax,
			StrengthMin: t.GustStrengthMin,
			StrengthMax: t.GustStrengthMax,
			DurationMin: t.GustDurationMin,
			DurationMax: t.GustDurationMax,
			Tilt:        t.GustTilt,
		},
		Contact: ContactSpec{Radius: balloon.DefaultContactRadius, Smoothing: 1},
	}
}

// Tuning converts the spec into physics constants.
func (s BalloonSpec) Tuning() balloon.Tuning {
	return balloon.Tuning{
		Radius:          s.Radius,
		Gravity:         s.Gravity,
		AirResistance:   s.AirResistance,
		BounceDamping:   s.BounceDamping,
		MaxVelocity:     s.MaxVelocity,
		GroundMargin:    s.GroundMargin,
		HitForce:        s.Hit.Force,
		HitUpwardBias:   s.Hit.UpwardBias,
		HitMinUpward:    s.Hit.MinUpward,
		FollowThrough:   s.Hit.FollowThrough,
		WobbleSpeed:     s.Wobble.Speed,
		WobbleAmplitude: s.Wobble.Amplitude,
		ResetSpeedX:     s.ResetSpeedX,
		GustIntervalMin: s.Gust.IntervalMin,
		GustIntervalMax: s.Gust.IntervalMax,
		GustStrengthMin: s.Gust.StrengthMin,
		GustStrengthMax: s.Gust.StrengthMax,
		GustDurationMin: s.Gust.DurationMin,
		GustDurationMax: s.Gust.DurationMax,
		GustTilt:        s.Gust.Tilt,
	}
}

// ParseBalloonSpec decodes yaml over the defaults and validates the result.
func ParseBalloonSpec(data []byte) (BalloonSpec, error) {
	spec := DefaultBalloonSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return BalloonSpec{}, err
	}
	if err := spec.Tuning().Validate(); err != nil {
		return BalloonSpec{}, err
	}
	if spec.Contact.Radius <= 0 {
		return BalloonSpec{}, fmt.Errorf("contact radius must be positive, got %v", spec.Contact.Radius)
	}
	if spec.Contact.Smoothing <= 0 || spec.Contact.Smoothing > 1 {
		return BalloonSpec{}, fmt.Errorf("contact smoothing must be in (0, 1], got %v", spec.Contact.Smoothing)
	}
	return spec, nil
}

func LoadBalloonSpec(filename string) (BalloonSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return BalloonSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseBalloonSpec(data)
	if err != nil {
		return BalloonSpec{}, fmt.Errorf("prefabs: parse %s: %w", filename, err)
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when the field was omitted.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
