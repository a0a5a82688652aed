package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/common"
	"github.com/milk9111/keepyuppy/prefabs"
	"github.com/milk9111/keepyuppy/script"
	"github.com/milk9111/keepyuppy/session"
)

const hitFlashSeconds = 0.15

type Options struct {
	Debug      bool
	Demo       bool
	ScriptName string
	TuningName string
	Watch      bool
}

type Game struct {
	frames int
	debug  bool
	demo   bool

	opts    Options
	spec    prefabs.BalloonSpec
	palette Palette

	session *session.Session
	mouse   *MouseInput
	pilot   *script.Autopilot
	watcher *prefabs.Watcher
	hud     *HUD

	hitFlash float64
	newBest  bool
}

func NewGame(opts Options) *Game {
	spec, err := prefabs.LoadBalloonSpec(opts.TuningName)
	if err != nil {
		log.Printf("failed to load tuning %s, using defaults: %v", opts.TuningName, err)
		spec = prefabs.DefaultBalloonSpec()
	}

	physics := balloon.New(common.BaseWidth, common.BaseHeight, balloon.WithTuning(spec.Tuning()))

	g := &Game{
		debug:   opts.Debug,
		opts:    opts,
		spec:    spec,
		palette: NewPalette(spec.Palette),
		mouse:   NewMouseInput(),
		hud:     NewHUD(),
	}

	if src, err := prefabs.LoadScript(opts.ScriptName); err != nil {
		log.Printf("failed to load script %s: %v", opts.ScriptName, err)
	} else if rt, err := script.Compile(opts.ScriptName, src); err != nil {
		log.Printf("%v", err)
	} else {
		g.pilot = script.NewAutopilot(rt, physics)
	}

	g.session = session.New(physics, g.mouse, spec.Contact.Radius)
	g.session.SetSmoothing(spec.Contact.Smoothing)
	g.setDemo(opts.Demo)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir(), filepath.Join(prefabs.Dir(), "scripts"))
		if err != nil {
			log.Printf("failed to watch %s: %v", prefabs.Dir(), err)
		} else {
			g.watcher = w
		}
	}

	g.session.StartRound()
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) setDemo(on bool) {
	if on && g.pilot == nil {
		log.Printf("Game: no autopilot script loaded, staying on mouse input")
		on = false
	}
	g.demo = on
	if on {
		g.session.SetSource(g.pilot)
	} else {
		g.session.SetSource(g.mouse)
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := 1.0 / float64(common.TPS)

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.setDemo(!g.demo)
	}

	g.reloadChanged()

	if !g.session.Running() {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.newBest = false
			g.session.StartRound()
		}
		return nil
	}

	res := g.session.Tick(dt)
	if len(res.Hits) > 0 {
		g.hitFlash = hitFlashSeconds
	} else if g.hitFlash > 0 {
		g.hitFlash -= dt
	}
	if res.Popped {
		g.newBest = res.NewBest
	}

	return nil
}

// reloadChanged applies edits picked up by the watcher. Bad files are
// logged and the running values stay.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.DrainErrors() {
		log.Printf("Game: watch: %v", err)
	}
	for _, path := range g.watcher.Drain() {
		switch {
		case prefabs.IsSpecFile(path) && sameFile(path, g.opts.TuningName):
			spec, err := prefabs.LoadBalloonSpec(g.opts.TuningName)
			if err != nil {
				log.Printf("Game: reload tuning: %v", err)
				continue
			}
			g.spec = spec
			g.palette = NewPalette(spec.Palette)
			g.session.Physics.SetTuning(spec.Tuning())
			g.session.SetContactRadius(spec.Contact.Radius)
			g.session.SetSmoothing(spec.Contact.Smoothing)
			log.Printf("Game: reloaded tuning %s", g.opts.TuningName)
		case prefabs.IsScriptFile(path) && g.pilot != nil && sameFile(path, scriptFile(g.opts.ScriptName)):
			src, err := prefabs.LoadScript(g.opts.ScriptName)
			if err != nil {
				log.Printf("Game: reload script: %v", err)
				continue
			}
			if err := g.pilot.Runtime().Reload(src); err != nil {
				log.Printf("Game: reload script: %v", err)
				continue
			}
			log.Printf("Game: reloaded script %s", g.opts.ScriptName)
		}
	}
}

func sameFile(path, name string) bool {
	return strings.EqualFold(filepath.Base(path), filepath.Base(name))
}

func scriptFile(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".tengo"
	}
	return name
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
