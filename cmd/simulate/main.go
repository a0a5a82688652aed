package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/common"
	"github.com/milk9111/keepyuppy/prefabs"
	"github.com/milk9111/keepyuppy/script"
	"github.com/milk9111/keepyuppy/scoring"
	"github.com/milk9111/keepyuppy/session"
)

// simulate plays rounds headlessly with a contact script, for checking a
// tuning file or script without opening a window.
func main() {
	tuningName := flag.String("tuning", "balloon.yaml", "balloon tuning yaml in prefabs/")
	scriptName := flag.String("script", "autopilot", "contact script in prefabs/scripts")
	rounds := flag.Int("rounds", 5, "number of rounds to play")
	limit := flag.Float64("limit", 120, "stop a round after this many seconds")
	seed := flag.Uint64("seed", 1, "random seed for gusts")
	flag.Parse()

	spec, err := prefabs.LoadBalloonSpec(*tuningName)
	if err != nil {
		log.Printf("failed to load tuning %s, using defaults: %v", *tuningName, err)
		spec = prefabs.DefaultBalloonSpec()
	}

	src, err := prefabs.LoadScript(*scriptName)
	if err != nil {
		log.Printf("failed to load script %s: %v", *scriptName, err)
		os.Exit(1)
	}
	rt, err := script.Compile(*scriptName, src)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	physics := balloon.New(common.BaseWidth, common.BaseHeight,
		balloon.WithTuning(spec.Tuning()),
		balloon.WithRand(rng),
	)
	s := session.New(physics, script.NewAutopilot(rt, physics), spec.Contact.Radius)
	s.SetSmoothing(spec.Contact.Smoothing)

	dt := 1.0 / float64(common.TPS)
	maxFrames := int(*limit * common.TPS)
	for i := 0; i < *rounds; i++ {
		s.StartRound()
		for frame := 0; s.Running() && frame < maxFrames; frame++ {
			s.Tick(dt)
		}
		if s.Running() {
			log.Printf("round %d: survived the %s limit with %d hits",
				i+1, scoring.FormatTime(*limit), s.Score.Hits())
			s.EndRound()
		}
	}

	stats := s.Score.Stats()
	log.Printf("best %s with %d hits over %d finished rounds",
		scoring.FormatTime(stats.BestTime), stats.BestHits, stats.TotalGames)
}
