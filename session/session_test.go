package session

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/contact"
)

type funcSource func(dt float64) []contact.Point

func (f funcSource) Contacts(dt float64) []contact.Point { return f(dt) }

func newPhysics(seed uint64) *balloon.Physics {
	return balloon.New(1280, 720, balloon.WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

func TestTickIdleUntilStarted(t *testing.T) {
	s := New(newPhysics(1), nil, 0)
	before := s.Physics.Position()
	res := s.Tick(1.0 / 60)
	if res.Popped || len(res.Hits) != 0 || s.Physics.Position() != before {
		t.Fatalf("idle session should not simulate")
	}
	if s.ContactRadius() != balloon.DefaultContactRadius {
		t.Fatalf("contact radius = %f", s.ContactRadius())
	}
}

func TestRoundWithoutContactsEndsInPop(t *testing.T) {
	s := New(newPhysics(2), nil, 25)
	s.StartRound()

	const dt = 1.0 / 60
	var res Result
	frames := 0
	for s.Running() && frames < 60*120 {
		res = s.Tick(dt)
		frames++
	}
	if !res.Popped || s.Running() {
		t.Fatalf("balloon should eventually pop with nobody swatting it")
	}
	if !res.NewBest {
		t.Fatalf("first round should be a new best")
	}
	if s.Score.Active() || s.Score.Best() <= 0 {
		t.Fatalf("score not closed out: %+v", s.Score.Stats())
	}

	after := s.Physics.Position()
	s.Tick(dt)
	if s.Physics.Position() != after {
		t.Fatalf("ticks after the pop should do nothing")
	}
}

func TestHitsAreScored(t *testing.T) {
	p := newPhysics(3)
	swat := funcSource(func(float64) []contact.Point {
		pos := p.Position()
		return []contact.Point{{ID: "p0/right_hand", Pos: pos.Add(cp.Vector{Y: 60})}}
	})
	s := New(p, swat, 25)
	s.StartRound()

	res := s.Tick(1.0 / 60)
	if len(res.Hits) != 1 {
		t.Fatalf("expected one hit, got %d", len(res.Hits))
	}
	if s.Score.Hits() != 1 {
		t.Fatalf("hits = %d, want 1", s.Score.Hits())
	}
	if len(s.LastContacts()) != 1 {
		t.Fatalf("last contacts = %+v", s.LastContacts())
	}
	if p.Velocity().Y >= 0 {
		t.Fatalf("swat from below should push the balloon up")
	}
}

func TestRestartAfterPop(t *testing.T) {
	s := New(newPhysics(4), nil, 25)
	s.StartRound()
	for s.Running() {
		s.Tick(0.1)
	}
	s.StartRound()
	if !s.Running() || s.Physics.Popped() || s.Score.Current() != 0 {
		t.Fatalf("restart did not reset the round")
	}
	if s.Score.Stats().TotalGames != 1 {
		t.Fatalf("total games = %d, want 1", s.Score.Stats().TotalGames)
	}
}

func TestEndRoundAtLimitCountsAsFinished(t *testing.T) {
	p := newPhysics(5)
	swat := funcSource(func(float64) []contact.Point {
		pos := p.Position()
		if pos.Y < 400 {
			return nil
		}
		return []contact.Point{{ID: "hand", Pos: pos.Add(cp.Vector{Y: 60})}}
	})
	s := New(p, swat, 25)

	const rounds = 2
	for i := 0; i < rounds; i++ {
		s.StartRound()
		for frame := 0; s.Running() && frame < 60; frame++ {
			s.Tick(1.0 / 60)
		}
		if !s.Running() {
			t.Fatalf("round %d popped before the limit", i)
		}
		newBest := s.EndRound()
		if i == 0 && !newBest {
			t.Fatalf("first limit-ended round should be a new best")
		}
		if s.Running() || s.Physics.Popped() {
			t.Fatalf("round %d still running after EndRound", i)
		}
	}

	st := s.Score.Stats()
	if st.TotalGames != rounds || st.BestTime <= 0 {
		t.Fatalf("limit-ended rounds not scored: %+v", st)
	}
	if s.EndRound() {
		t.Fatalf("ending an idle session should do nothing")
	}
	if got := s.Score.TotalGames(); got != rounds {
		t.Fatalf("idle EndRound changed total games to %d", got)
	}
}

func TestPopClearsLastContacts(t *testing.T) {
	p := newPhysics(6)
	// A contact off the arena never touches the balloon but is reported
	// every frame until the pop.
	idle := funcSource(func(float64) []contact.Point {
		return []contact.Point{{ID: "hand", Pos: cp.Vector{X: -500, Y: -500}}}
	})
	s := New(p, idle, 25)
	s.StartRound()

	var res Result
	for frame := 0; s.Running() && frame < 10*120; frame++ {
		res = s.Tick(0.1)
		if s.Running() && len(s.LastContacts()) != 1 {
			t.Fatalf("running round should report its contacts")
		}
	}
	if !res.Popped {
		t.Fatalf("expected the round to end in a pop")
	}
	if got := s.LastContacts(); len(got) != 0 {
		t.Fatalf("contacts left over after the pop: %+v", got)
	}
}
