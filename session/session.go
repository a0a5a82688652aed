package session

import (
	"log"

	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/contact"
	"github.com/milk9111/keepyuppy/scoring"
)

// Result is what happened during one tick, for the host to react to
// (sounds, flashes, log lines).
type Result struct {
	Hits    []contact.Hit
	Popped  bool // the balloon popped during this tick
	NewBest bool
}

// Session runs rounds: it steps the balloon, feeds contacts from the
// source into it and keeps score.
type Session struct {
	Physics *balloon.Physics
	Score   *scoring.Scoring

	tracker       *contact.Tracker
	source        contact.Source
	contactRadius float64
	running       bool
	lastContacts  []contact.Point
}

func New(physics *balloon.Physics, source contact.Source, contactRadius float64) *Session {
	if contactRadius <= 0 {
		contactRadius = balloon.DefaultContactRadius
	}
	return &Session{
		Physics:       physics,
		Score:         scoring.New(),
		tracker:       contact.NewTracker(),
		source:        source,
		contactRadius: contactRadius,
	}
}

// StartRound resets the balloon and the round score.
func (s *Session) StartRound() {
	s.Physics.Reset()
	s.Score.Start()
	s.tracker.Reset()
	s.running = true
	log.Printf("Session: round started, best %s", scoring.FormatTime(s.Score.Best()))
}

func (s *Session) Running() bool { return s.running }

// SetSource swaps where contacts come from, e.g. when toggling demo mode.
func (s *Session) SetSource(src contact.Source) {
	s.source = src
	s.tracker.Reset()
}

func (s *Session) SetContactRadius(r float64) {
	if r > 0 {
		s.contactRadius = r
	}
}

func (s *Session) ContactRadius() float64 { return s.contactRadius }

// SetSmoothing eases tracked contacts toward new readings, see
// contact.Tracker.SetSmoothing.
func (s *Session) SetSmoothing(f float64) { s.tracker.SetSmoothing(f) }

// LastContacts are the points seen on the latest tick, for drawing.
func (s *Session) LastContacts() []contact.Point { return s.lastContacts }

// Tick advances a running round by dt: physics first, then score, then
// contact hits, then the pop check.
func (s *Session) Tick(dt float64) Result {
	var res Result
	if !s.running {
		return res
	}

	s.Physics.Update(dt)
	s.Score.Update(dt)

	s.lastContacts = nil
	if s.source != nil {
		s.lastContacts = s.source.Contacts(dt)
	}
	res.Hits = s.tracker.Resolve(s.Physics, s.lastContacts, s.contactRadius, dt)
	for range res.Hits {
		s.Score.RecordHit()
	}

	if s.Physics.Popped() {
		res.Popped = true
		res.NewBest = s.endRound("balloon popped")
	}
	return res
}

// EndRound closes a running round that did not pop, e.g. one stopped at a
// time limit, and reports whether it set a new best.
func (s *Session) EndRound() bool {
	if !s.running {
		return false
	}
	return s.endRound("round stopped")
}

func (s *Session) endRound(why string) bool {
	s.running = false
	s.lastContacts = nil
	newBest := s.Score.End()
	log.Printf("Session: %s after %s with %d hits (new best: %v)",
		why, scoring.FormatTime(s.Score.Current()), s.Score.Hits(), newBest)
	return newBest
}
