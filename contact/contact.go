package contact

import (
	"math"

	"github.com/jakecoffman/cp"
)

// minVelocityDT bounds the finite-difference step so a stalled frame does not
// produce a huge swing velocity.
const minVelocityDT = 0.001

// Point is a potential striking surface: a hand, elbow or nose from pose
// tracking, or the mouse cursor. IDs must be stable across frames for
// velocity estimation; an empty ID is treated as stationary.
type Point struct {
	ID     string
	Pos    cp.Vector
	Radius float64 // 0 means use the caller's default
}

// Source supplies the contact points for one frame. Returning none is
// always valid.
type Source interface {
	Contacts(dt float64) []Point
}

// Target is what contacts can hit.
type Target interface {
	CheckCollision(point cp.Vector, collisionRadius float64) bool
	ApplyHit(hitPoint, contactVelocity cp.Vector)
}

// Hit records one contact that struck the target this frame.
type Hit struct {
	Point    Point
	Velocity cp.Vector
}

// Tracker remembers where each contact was last frame.
type Tracker struct {
	prev      map[string]cp.Vector
	next      map[string]cp.Vector
	smoothing float64
}

func NewTracker() *Tracker {
	return &Tracker{
		prev:      make(map[string]cp.Vector),
		next:      make(map[string]cp.Vector),
		smoothing: 1,
	}
}

// SetSmoothing sets how far a tracked contact moves toward its new reading
// each frame, in (0, 1]. 1 follows the raw input; pose trackers jitter and
// read better around 0.3. Out of range values turn smoothing off.
func (t *Tracker) SetSmoothing(f float64) {
	if f <= 0 || f > 1 {
		f = 1
	}
	t.smoothing = f
}

func (t *Tracker) Smoothing() float64 { return t.smoothing }

// smooth eases p toward its reading from the last frame.
func (t *Tracker) smooth(p Point) Point {
	if p.ID == "" || t.smoothing >= 1 {
		return p
	}
	if last, ok := t.prev[p.ID]; ok {
		p.Pos = last.Add(p.Pos.Sub(last).Mult(t.smoothing))
	}
	return p
}

// Velocity estimates how fast a contact is moving from its previous
// position. Unknown contacts are at rest.
func (t *Tracker) Velocity(p Point, dt float64) cp.Vector {
	if t == nil || p.ID == "" {
		return cp.Vector{}
	}
	last, ok := t.prev[p.ID]
	if !ok {
		return cp.Vector{}
	}
	return p.Pos.Sub(last).Mult(1 / math.Max(dt, minVelocityDT))
}

// Resolve tests every point against the target and applies a hit for each
// overlap, using the tracked contact velocity as follow-through. Points are
// smoothed first, so hits report the smoothed position. Contacts missing
// from this frame are forgotten.
func (t *Tracker) Resolve(target Target, points []Point, defaultRadius, dt float64) []Hit {
	if t == nil || target == nil {
		return nil
	}

	var hits []Hit
	for _, p := range points {
		p = t.smooth(p)
		radius := p.Radius
		if radius <= 0 {
			radius = defaultRadius
		}

		if target.CheckCollision(p.Pos, radius) {
			v := t.Velocity(p, dt)
			target.ApplyHit(p.Pos, v)
			hits = append(hits, Hit{Point: p, Velocity: v})
		}

		if p.ID != "" {
			t.next[p.ID] = p.Pos
		}
	}

	t.prev, t.next = t.next, t.prev
	clear(t.next)
	return hits
}

// Reset forgets all contact history.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	clear(t.prev)
	clear(t.next)
}
