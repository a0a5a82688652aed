package scoring

import (
	"fmt"
	"math"
)

// Stats is a snapshot of the scoreboard.
type Stats struct {
	CurrentTime float64
	CurrentHits int
	BestTime    float64
	BestHits    int
	TotalGames  int
	TotalTime   float64
	Active      bool
}

// Scoring tracks how long the balloon has stayed up this round, how many
// times it was hit, and the best round so far. A round's score is its
// airborne time.
type Scoring struct {
	current float64
	hits    int
	active  bool

	best       float64
	bestHits   int
	totalGames int
	totalTime  float64
}

func New() *Scoring {
	return &Scoring{}
}

// Start begins a new round.
func (s *Scoring) Start() {
	s.current = 0
	s.hits = 0
	s.active = true
}

// Update accrues airborne time while a round is running.
func (s *Scoring) Update(dt float64) {
	if s.active {
		s.current += dt
	}
}

// RecordHit counts a swat during a running round.
func (s *Scoring) RecordHit() {
	if s.active {
		s.hits++
	}
}

// End closes the round and reports whether it set a new best time.
// Ending a round that is not running does nothing.
func (s *Scoring) End() bool {
	if !s.active {
		return false
	}
	s.active = false
	s.totalGames++
	s.totalTime += s.current

	if s.current > s.best {
		s.best = s.current
		s.bestHits = s.hits
		return true
	}
	return false
}

// ResetBest wipes the best round and lifetime totals.
func (s *Scoring) ResetBest() {
	s.best = 0
	s.bestHits = 0
	s.totalGames = 0
	s.totalTime = 0
}

func (s *Scoring) Current() float64 { return s.current }
func (s *Scoring) Hits() int { return s.hits }
func (s *Scoring) Best() float64 { return s.best }
func (s *Scoring) BestHits() int { return s.bestHits }
func (s *Scoring) Active() bool { return s.active }
func (s *Scoring) TotalGames() int { return s.totalGames }
func (s *Scoring) TotalTime() float64 { return s.totalTime }

func (s *Scoring) Stats() Stats {
	return Stats{
		CurrentTime: s.current,
		CurrentHits: s.hits,
		BestTime:    s.best,
		BestHits:    s.bestHits,
		TotalGames:  s.totalGames,
		TotalTime:   s.totalTime,
		Active:      s.active,
	}
}

// FormatTime renders seconds as MM:SS.cc.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	centis := int(math.Mod(seconds, 1) * 100)
	return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, centis)
}
