package balloon

import (
	"errors"
	"fmt"
)

// DefaultContactRadius is the collision radius assumed for a contact point
// when the caller has no better estimate.
const DefaultContactRadius = 30.0

// Tuning holds the physical constants of the balloon. Distances are in
// arena units (pixels), times in seconds, angles in radians.
type Tuning struct {
	Radius        float64
	Gravity       float64
	AirResistance float64 // velocity multiplier per Update call, not scaled by dt
	BounceDamping float64
	MaxVelocity   float64
	GroundMargin  float64

	HitForce      float64
	HitUpwardBias float64
	HitMinUpward  float64
	FollowThrough float64

	WobbleSpeed     float64
	WobbleAmplitude float64

	ResetSpeedX float64

	GustIntervalMin float64
	GustIntervalMax float64
	GustStrengthMin float64
	GustStrengthMax float64
	GustDurationMin float64
	GustDurationMax float64
	GustTilt        float64
}

// DefaultTuning returns the reference tuning: a slow, floaty fall with
// occasional sideways gusts.
func DefaultTuning() Tuning {
	return Tuning{
		Radius:        50,
		Gravity:       80,
		AirResistance: 0.98,
		BounceDamping: 0.7,
		MaxVelocity:   400,
		GroundMargin:  60,

		HitForce:      350,
		HitUpwardBias: 1.3,
		HitMinUpward:  0.3,
		FollowThrough: 0.3,

		WobbleSpeed:     3,
		WobbleAmplitude: 3,

		ResetSpeedX: 50,

		GustIntervalMin: 3,
		GustIntervalMax: 8,
		GustStrengthMin: 100,
		GustStrengthMax: 300,
		GustDurationMin: 1,
		GustDurationMax: 3,
		GustTilt:        0.3,
	}
}

// Validate reports every field that would break the simulation.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	span := func(name string, lo, hi float64) {
		if lo > hi {
			errs = append(errs, fmt.Errorf("%s min %v exceeds max %v", name, lo, hi))
		}
	}

	positive("radius", t.Radius)
	nonNegative("gravity", t.Gravity)
	if t.AirResistance <= 0 || t.AirResistance > 1 {
		errs = append(errs, fmt.Errorf("air_resistance must be in (0, 1], got %v", t.AirResistance))
	}
	if t.BounceDamping < 0 || t.BounceDamping > 1 {
		errs = append(errs, fmt.Errorf("bounce_damping must be in [0, 1], got %v", t.BounceDamping))
	}
	positive("max_velocity", t.MaxVelocity)
	nonNegative("ground_margin", t.GroundMargin)
	nonNegative("hit_force", t.HitForce)
	positive("hit_upward_bias", t.HitUpwardBias)
	positive("hit_min_upward", t.HitMinUpward)
	nonNegative("follow_through", t.FollowThrough)
	nonNegative("wobble_speed", t.WobbleSpeed)
	nonNegative("reset_speed_x", t.ResetSpeedX)
	positive("gust interval min", t.GustIntervalMin)
	span("gust interval", t.GustIntervalMin, t.GustIntervalMax)
	nonNegative("gust strength min", t.GustStrengthMin)
	span("gust strength", t.GustStrengthMin, t.GustStrengthMax)
	positive("gust duration min", t.GustDurationMin)
	span("gust duration", t.GustDurationMin, t.GustDurationMax)
	nonNegative("gust tilt", t.GustTilt)

	if len(errs) > 0 {
		return fmt.Errorf("balloon: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}
