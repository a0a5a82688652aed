package balloon

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Wind is a single gust. Direction 0 blows rightward; cos gives the x
// component and sin the y component.
type Wind struct {
	Direction   float64
	Strength    float64
	Duration    float64 // seconds left
	MaxDuration float64
}

// Force returns the gust force vector.
func (w *Wind) Force() cp.Vector {
	return cp.ForAngle(w.Direction).Mult(w.Strength)
}

// Remaining is the fraction of the gust's life still ahead, 1 at spawn and
// falling to 0.
func (w *Wind) Remaining() float64 {
	if w.MaxDuration <= 0 {
		return 0
	}
	return w.Duration / w.MaxDuration
}

// WindIndicator is what a HUD needs to draw a fading wind arrow.
type WindIndicator struct {
	Direction float64
	Strength  float64
	Remaining float64
}

// updateWind ages the active gust and spawns a new one when the spawn timer
// reaches its threshold. A spawn replaces whatever gust is running.
func (p *Physics) updateWind(dt float64) {
	if p.wind != nil {
		p.wind.Duration -= dt
		if p.wind.Duration <= 0 {
			p.wind = nil
		}
	}

	p.spawnTimer += dt
	if p.spawnTimer >= p.nextGust {
		p.spawnGust()
		p.spawnTimer = 0
		p.nextGust = p.drawGustInterval()
	}
}

func (p *Physics) spawnGust() {
	base := 0.0
	if p.rng.IntN(2) == 1 {
		base = math.Pi
	}
	direction := base + p.uniform(-p.tuning.GustTilt, p.tuning.GustTilt)
	strength := p.uniform(p.tuning.GustStrengthMin, p.tuning.GustStrengthMax)
	duration := p.uniform(p.tuning.GustDurationMin, p.tuning.GustDurationMax)

	p.wind = &Wind{
		Direction:   direction,
		Strength:    strength,
		Duration:    duration,
		MaxDuration: duration,
	}
}

func (p *Physics) drawGustInterval() float64 {
	return p.uniform(p.tuning.GustIntervalMin, p.tuning.GustIntervalMax)
}

func (p *Physics) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*p.rng.Float64()
}
