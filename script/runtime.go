package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/contact"
)

// Frame is what a contact script sees each tick.
type Frame struct {
	Balloon  balloon.RenderInfo
	Velocity cp.Vector
	Width    float64
	Height   float64
	GroundY  float64
	DT       float64
	Elapsed  float64
}

// Runtime runs a compiled tengo script that produces contact points. The
// script reads the globals balloon, arena, dt, elapsed and state (a map
// that survives between frames) and assigns its output to contacts.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Compile builds a runtime from script source.
func Compile(name string, src []byte) (*Runtime, error) {
	compiled, err := compile(src)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("balloon", map[string]any{})
	_ = script.Add("arena", map[string]any{})
	_ = script.Add("state", map[string]any{})
	_ = script.Add("dt", 0.0)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("contacts", []any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *Runtime) Name() string {
	if rt == nil {
		return ""
	}
	return rt.name
}

// Reload swaps in new source. On a compile error the previous program and
// its state stay in place.
func (rt *Runtime) Reload(src []byte) error {
	if rt == nil {
		return fmt.Errorf("script: nil runtime")
	}
	compiled, err := compile(src)
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", rt.name, err)
	}
	rt.compiled = compiled
	rt.state = &tengo.Map{Value: map[string]tengo.Object{}}
	return nil
}

// Run executes one frame and returns the contacts the script emitted.
func (rt *Runtime) Run(f Frame) ([]contact.Point, error) {
	if rt == nil || rt.compiled == nil {
		return nil, fmt.Errorf("script: nil runtime")
	}

	b := f.Balloon
	globals := map[string]any{
		"balloon": map[string]any{
			"x":      b.Pos.X,
			"y":      b.Pos.Y,
			"vx":     f.Velocity.X,
			"vy":     f.Velocity.Y,
			"radius": b.Radius,
			"popped": b.Popped,
			"wind":   b.WindActive,
		},
		"arena": map[string]any{
			"width":    f.Width,
			"height":   f.Height,
			"ground_y": f.GroundY,
		},
		"state":    rt.state,
		"dt":       f.DT,
		"elapsed":  f.Elapsed,
		"contacts": []any{},
	}
	for name, v := range globals {
		if err := rt.compiled.Set(name, v); err != nil {
			return nil, fmt.Errorf("script: %s: set %s: %w", rt.name, name, err)
		}
	}

	if err := rt.compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: %s: run: %w", rt.name, err)
	}

	return parseContacts(rt.name, rt.compiled.Get("contacts").Array())
}

// parseContacts accepts either [x, y] pairs or maps with x, y and optional
// id and radius.
func parseContacts(prefix string, items []any) ([]contact.Point, error) {
	out := make([]contact.Point, 0, len(items))
	for i, item := range items {
		p := contact.Point{ID: fmt.Sprintf("%s/%d", prefix, i)}
		switch v := item.(type) {
		case []any:
			if len(v) < 2 {
				return nil, fmt.Errorf("script: %s: contact %d needs [x, y]", prefix, i)
			}
			x, okX := toFloat(v[0])
			y, okY := toFloat(v[1])
			if !okX || !okY {
				return nil, fmt.Errorf("script: %s: contact %d has non-numeric coordinates", prefix, i)
			}
			p.Pos = cp.Vector{X: x, Y: y}
		case map[string]any:
			x, okX := toFloat(v["x"])
			y, okY := toFloat(v["y"])
			if !okX || !okY {
				return nil, fmt.Errorf("script: %s: contact %d needs numeric x and y", prefix, i)
			}
			p.Pos = cp.Vector{X: x, Y: y}
			if id, ok := v["id"].(string); ok && strings.TrimSpace(id) != "" {
				p.ID = strings.TrimSpace(id)
			}
			if r, ok := toFloat(v["radius"]); ok {
				p.Radius = r
			}
		default:
			return nil, fmt.Errorf("script: %s: contact %d has unsupported type %T", prefix, i, item)
		}
		out = append(out, p)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
