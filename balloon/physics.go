package balloon

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/common"
)

// Physics simulates one balloon in a walled arena: gravity, wind gusts,
// drag, wall and ceiling bounces, and popping on the ground. It is not safe
// for concurrent use; the game loop owns it.
type Physics struct {
	width   float64
	height  float64
	groundY float64
	tuning  Tuning
	rng     *rand.Rand

	pos    cp.Vector
	vel    cp.Vector
	popped bool
	wobble float64

	wind       *Wind
	spawnTimer float64
	nextGust   float64
}

// Option configures a Physics at construction.
type Option func(*Physics)

// WithRand injects the random source used for reset velocity and gusts.
func WithRand(r *rand.Rand) Option {
	return func(p *Physics) {
		if r != nil {
			p.rng = r
		}
	}
}

// WithTuning replaces the reference tuning.
func WithTuning(t Tuning) Option {
	return func(p *Physics) {
		p.tuning = t
	}
}

// New creates a balloon at (width/2, height/3), at rest.
func New(width, height float64, opts ...Option) *Physics {
	p := &Physics{
		width:  width,
		height: height,
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		seed := uint64(time.Now().UnixNano())
		p.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	p.groundY = height - p.tuning.GroundMargin
	p.pos = p.startPosition()
	p.nextGust = p.drawGustInterval()
	return p
}

// Reset starts a new round: the balloon is re-centred with a small random
// sideways drift, unpopped, and any gust is dropped.
func (p *Physics) Reset() {
	p.pos = p.startPosition()
	p.vel = cp.Vector{X: p.uniform(-p.tuning.ResetSpeedX, p.tuning.ResetSpeedX)}
	p.popped = false
	p.wind = nil
	p.nextGust = p.drawGustInterval()
}

// SetTuning swaps the constants in place. Kinematic state is kept; the
// ground line is rederived from the new margin.
func (p *Physics) SetTuning(t Tuning) {
	p.tuning = t
	p.groundY = p.height - t.GroundMargin
}

// Tuning returns the constants in effect.
func (p *Physics) Tuning() Tuning {
	return p.tuning
}

// Update advances the simulation by dt seconds. It does nothing once the
// balloon has popped.
func (p *Physics) Update(dt float64) {
	if p.popped {
		return
	}
	t := &p.tuning

	p.vel.Y += t.Gravity * dt

	p.updateWind(dt)
	if p.wind != nil && p.wind.Duration > 0 {
		p.vel = p.vel.Add(p.wind.Force().Mult(dt))
	}

	// Drag is applied once per call regardless of dt.
	p.vel = p.vel.Mult(t.AirResistance)

	p.vel.X = common.Clamp(p.vel.X, -t.MaxVelocity, t.MaxVelocity)
	p.vel.Y = common.Clamp(p.vel.Y, -t.MaxVelocity, t.MaxVelocity)

	p.pos = p.pos.Add(p.vel.Mult(dt))

	p.collideWalls()

	if p.pos.Y+t.Radius >= p.groundY {
		p.popped = true
		p.pos.Y = p.groundY - t.Radius
	}

	p.wobble = common.WrapAngle(p.wobble + t.WobbleSpeed*dt)
}

func (p *Physics) collideWalls() {
	r := p.tuning.Radius
	damping := p.tuning.BounceDamping

	if p.pos.X-r < 0 {
		p.pos.X = r
		p.vel.X = math.Abs(p.vel.X) * damping
	}
	if p.pos.X+r > p.width {
		p.pos.X = p.width - r
		p.vel.X = -math.Abs(p.vel.X) * damping
	}
	if p.pos.Y-r < 0 {
		p.pos.Y = r
		p.vel.Y = math.Abs(p.vel.Y) * damping
	}
}

// CheckCollision reports whether a contact of the given radius centred at
// point overlaps the balloon. A popped balloon never collides.
func (p *Physics) CheckCollision(point cp.Vector, collisionRadius float64) bool {
	if p.popped {
		return false
	}
	return point.Distance(p.pos) < p.tuning.Radius+collisionRadius
}

// ApplyHit adds an impulse pushing the balloon away from hitPoint, biased
// upward and stronger the closer the hit. The contact's own velocity adds
// a follow-through share. The result is clamped on the next Update.
func (p *Physics) ApplyHit(hitPoint, contactVelocity cp.Vector) {
	if p.popped {
		return
	}
	t := &p.tuning

	dir := p.pos.Sub(hitPoint)
	distance := dir.Length()
	if distance < 0.1 {
		dir = cp.Vector{X: 0, Y: -1}
		distance = 1
	}
	dir = dir.Mult(1 / distance)

	dir.Y = math.Min(dir.Y, -t.HitMinUpward) * t.HitUpwardBias
	dir = dir.Mult(1 / dir.Length())

	proximity := 1 - math.Min(distance/(t.Radius*2), 1)
	impulse := t.HitForce * (0.5 + 0.5*proximity)

	p.vel = p.vel.Add(dir.Mult(impulse)).Add(contactVelocity.Mult(t.FollowThrough))
}

// Position returns the balloon centre.
func (p *Physics) Position() cp.Vector {
	return p.pos
}

// Velocity returns the balloon velocity.
func (p *Physics) Velocity() cp.Vector {
	return p.vel
}

func (p *Physics) Radius() float64 { return p.tuning.Radius }
func (p *Physics) Popped() bool { return p.popped }
func (p *Physics) Width() float64 { return p.width }
func (p *Physics) Height() float64 { return p.height }
func (p *Physics) GroundY() float64 { return p.groundY }

// RenderInfo is a snapshot for drawing the balloon.
type RenderInfo struct {
	Pos    cp.Vector
	Radius float64
	Wobble float64 // cosmetic offset, no physical effect
	Popped bool

	WindActive    bool
	WindDirection float64
	WindStrength  float64
}

// RenderInfo returns the current drawable state.
func (p *Physics) RenderInfo() RenderInfo {
	info := RenderInfo{
		Pos:    p.pos,
		Radius: p.tuning.Radius,
		Wobble: math.Sin(p.wobble) * p.tuning.WobbleAmplitude,
		Popped: p.popped,
	}
	if p.wind != nil {
		info.WindActive = p.wind.Duration > 0
		info.WindDirection = p.wind.Direction
		info.WindStrength = p.wind.Strength
	}
	return info
}

// WindIndicator returns the active gust for a HUD, or false when calm.
func (p *Physics) WindIndicator() (WindIndicator, bool) {
	if p.wind == nil || p.wind.Duration <= 0 {
		return WindIndicator{}, false
	}
	return WindIndicator{
		Direction: p.wind.Direction,
		Strength:  p.wind.Strength,
		Remaining: p.wind.Remaining(),
	}, true
}

func (p *Physics) startPosition() cp.Vector {
	return cp.Vector{X: p.width / 2, Y: p.height / 3}
}
