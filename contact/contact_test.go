package contact

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/balloon"
)

type recordingTarget struct {
	center cp.Vector
	radius float64
	hits   []Hit
}

func (r *recordingTarget) CheckCollision(point cp.Vector, collisionRadius float64) bool {
	return point.Distance(r.center) < r.radius+collisionRadius
}

func (r *recordingTarget) ApplyHit(hitPoint, v cp.Vector) {
	r.hits = append(r.hits, Hit{Point: Point{Pos: hitPoint}, Velocity: v})
}

func TestResolveUsesRadiusFallback(t *testing.T) {
	cases := []struct {
		name    string
		point   Point
		wantHit bool
	}{
		{"default_radius_hits", Point{ID: "a", Pos: cp.Vector{X: 70}}, true},
		{"default_radius_misses", Point{ID: "a", Pos: cp.Vector{X: 90}}, false},
		{"own_radius_hits", Point{ID: "a", Pos: cp.Vector{X: 90}, Radius: 45}, true},
		{"anonymous_point", Point{Pos: cp.Vector{Y: 10}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := &recordingTarget{radius: 50}
			hits := NewTracker().Resolve(target, []Point{tc.point}, 30, 1.0/60)
			if got := len(hits) == 1; got != tc.wantHit {
				t.Fatalf("hit = %v, want %v", got, tc.wantHit)
			}
			if len(target.hits) != len(hits) {
				t.Fatalf("target saw %d hits, resolver reported %d", len(target.hits), len(hits))
			}
		})
	}
}

func TestResolveEstimatesVelocity(t *testing.T) {
	tr := NewTracker()
	target := &recordingTarget{center: cp.Vector{X: 1000, Y: 1000}, radius: 50}
	dt := 0.02

	// First sighting: no history, no hit.
	tr.Resolve(target, []Point{{ID: "p0/right_hand", Pos: cp.Vector{X: 1000, Y: 1100}}}, 25, dt)
	hits := tr.Resolve(target, []Point{{ID: "p0/right_hand", Pos: cp.Vector{X: 1000, Y: 1060}}}, 25, dt)
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %d", len(hits))
	}
	want := cp.Vector{X: 0, Y: -40 / dt}
	if got := hits[0].Velocity; math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("velocity = %v, want %v", got, want)
	}
}

func TestTrackerForgetsMissingContacts(t *testing.T) {
	tr := NewTracker()
	target := &recordingTarget{center: cp.Vector{X: 500, Y: 500}, radius: 10}

	tr.Resolve(target, []Point{{ID: "nose", Pos: cp.Vector{X: 0, Y: 0}}}, 5, 0.1)
	tr.Resolve(target, nil, 5, 0.1)

	p := Point{ID: "nose", Pos: cp.Vector{X: 10, Y: 0}}
	if v := tr.Velocity(p, 0.1); v != (cp.Vector{}) {
		t.Fatalf("stale contact produced velocity %v", v)
	}
}

func TestVelocityClampsTinyStep(t *testing.T) {
	tr := NewTracker()
	tr.Resolve(&recordingTarget{center: cp.Vector{X: 1e6}}, []Point{{ID: "h", Pos: cp.Vector{}}}, 1, 0)
	v := tr.Velocity(Point{ID: "h", Pos: cp.Vector{X: 1}}, 0)
	if v.X != 1000 {
		t.Fatalf("velocity over zero dt = %v, want 1000", v)
	}
}

func TestResolveAgainstBalloon(t *testing.T) {
	p := balloon.New(1280, 720, balloon.WithRand(rand.New(rand.NewPCG(7, 8))))
	tr := NewTracker()
	center := p.Position()

	points := []Point{
		{ID: "p0/left_hand", Pos: center.Add(cp.Vector{X: -20, Y: 60})},
		{ID: "p0/nose", Pos: cp.Vector{X: 0, Y: 0}},
	}
	hits := tr.Resolve(p, points, balloon.DefaultContactRadius, 1.0/60)
	if len(hits) != 1 || hits[0].Point.ID != "p0/left_hand" {
		t.Fatalf("expected only the hand to hit, got %+v", hits)
	}
	if p.Velocity().Y >= 0 {
		t.Fatalf("hand swat from below should send the balloon up, vy = %f", p.Velocity().Y)
	}
}

func TestSmoothingEasesTowardReading(t *testing.T) {
	tr := NewTracker()
	tr.SetSmoothing(0.25)
	far := &recordingTarget{center: cp.Vector{X: -1000, Y: -1000}, radius: 1}
	dt := 0.1

	tr.Resolve(far, []Point{{ID: "nose", Pos: cp.Vector{X: 0}}}, 10, dt)
	tr.Resolve(far, []Point{{ID: "nose", Pos: cp.Vector{X: 100}}}, 10, dt)

	// Smoothed position is 25; the next reading of 25 is then at rest.
	v := tr.Velocity(Point{ID: "nose", Pos: cp.Vector{X: 25}}, dt)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y) > 1e-9 {
		t.Fatalf("velocity = %+v, want zero at the smoothed position", v)
	}

	// A target sitting at the raw reading is missed; the smoothed point is not there yet.
	near := &recordingTarget{center: cp.Vector{X: 200}, radius: 5}
	if hits := tr.Resolve(near, []Point{{ID: "nose", Pos: cp.Vector{X: 200}}}, 10, dt); len(hits) != 0 {
		t.Fatalf("smoothed contact should lag the raw reading, got %+v", hits)
	}

	for _, f := range []float64{0, -1, 1.5} {
		tr.SetSmoothing(f)
		if tr.Smoothing() != 1 {
			t.Fatalf("SetSmoothing(%v) = %v, want 1", f, tr.Smoothing())
		}
	}
}
