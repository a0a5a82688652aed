package script

import (
	"log"

	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/contact"
)

// Autopilot is a contact source driven by a script, used when no camera is
// available. Script errors are logged and yield no contacts for that frame.
type Autopilot struct {
	rt      *Runtime
	physics *balloon.Physics
	elapsed float64
	failing bool
}

var _ contact.Source = (*Autopilot)(nil)

func NewAutopilot(rt *Runtime, physics *balloon.Physics) *Autopilot {
	return &Autopilot{rt: rt, physics: physics}
}

// Runtime exposes the script so the host can hot reload it.
func (a *Autopilot) Runtime() *Runtime {
	if a == nil {
		return nil
	}
	return a.rt
}

func (a *Autopilot) Contacts(dt float64) []contact.Point {
	if a == nil || a.rt == nil || a.physics == nil {
		return nil
	}
	a.elapsed += dt

	points, err := a.rt.Run(Frame{
		Balloon:  a.physics.RenderInfo(),
		Velocity: a.physics.Velocity(),
		Width:    a.physics.Width(),
		Height:   a.physics.Height(),
		GroundY:  a.physics.GroundY(),
		DT:       dt,
		Elapsed:  a.elapsed,
	})
	if err != nil {
		// Log once per failure streak rather than every frame.
		if !a.failing {
			log.Printf("Autopilot: %v", err)
		}
		a.failing = true
		return nil
	}
	a.failing = false
	return points
}
