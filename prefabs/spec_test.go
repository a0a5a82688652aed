package prefabs

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/milk9111/keepyuppy/balloon"
)

func TestEmbeddedBalloonSpecMatchesDefaults(t *testing.T) {
	data, err := PrefabsFS.ReadFile("balloon.yaml")
	if err != nil {
		t.Fatalf("read embedded balloon.yaml: %v", err)
	}
	spec, err := ParseBalloonSpec(data)
	if err != nil {
		t.Fatalf("parse embedded balloon.yaml: %v", err)
	}
	if got, want := spec.Tuning(), balloon.DefaultTuning(); got != want {
		t.Fatalf("embedded tuning drifted from defaults:\n got %+v\nwant %+v", got, want)
	}
	if spec.Contact.Radius != 25 || spec.Contact.Smoothing != 1 {
		t.Fatalf("contact = %+v, want radius 25 smoothing 1", spec.Contact)
	}
	if spec.Palette.Balloon == nil {
		t.Fatalf("palette balloon color missing")
	}
}

func TestParseBalloonSpecPartialOverride(t *testing.T) {
	spec, err := ParseBalloonSpec([]byte("gravity: 120\ngust:\n  interval_max: 5\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tn := spec.Tuning()
	if tn.Gravity != 120 || tn.GustIntervalMax != 5 {
		t.Fatalf("overrides not applied: %+v", tn)
	}
	if tn.GustIntervalMin != 3 || tn.Radius != 50 || tn.HitForce != 350 {
		t.Fatalf("omitted fields lost their defaults: %+v", tn)
	}
	if spec.Contact.Radius != balloon.DefaultContactRadius {
		t.Fatalf("contact radius = %f", spec.Contact.Radius)
	}
}

func TestParseBalloonSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad_yaml", "radius: [", "yaml"},
		{"invalid_tuning", "air_resistance: 2", "air_resistance"},
		{"bad_contact", "contact:\n  radius: -1", "contact radius"},
		{"bad_smoothing", "contact:\n  smoothing: 0", "contact smoothing"},
		{"bad_color", "palette:\n  sky: \"#12\"", "invalid color"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBalloonSpec([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestYAMLColorFallback(t *testing.T) {
	spec, err := ParseBalloonSpec([]byte("palette:\n  sky: \"#10203080\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}
	if got := spec.Palette.Sky.Or(color.Black); got != want {
		t.Fatalf("sky = %v, want %v", got, want)
	}
	if got := spec.Palette.Ground.Or(color.White); got != color.White {
		t.Fatalf("missing ground should fall back, got %v", got)
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[BalloonSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
	if _, err := LoadBalloonSpec("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing balloon prefab")
	}
}

func TestLoadScriptPaths(t *testing.T) {
	for _, name := range []string{"autopilot", "autopilot.tengo", "scripts/autopilot.tengo", "prefabs/scripts/autopilot.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if !strings.Contains(string(data), "contacts") {
			t.Fatalf("LoadScript(%q) returned unexpected content", name)
		}
	}
}

func TestWatchFilters(t *testing.T) {
	cases := map[string][2]bool{
		"prefabs/balloon.yaml":            {true, false},
		"prefabs/balloon.YML":             {true, false},
		"prefabs/scripts/autopilot.tengo": {false, true},
		"prefabs/notes.txt":               {false, false},
	}
	for path, want := range cases {
		if got := IsSpecFile(path); got != want[0] {
			t.Fatalf("IsSpecFile(%q) = %v", path, got)
		}
		if got := IsScriptFile(path); got != want[1] {
			t.Fatalf("IsScriptFile(%q) = %v", path, got)
		}
	}
}

func TestDrainErrorsReportsPendingErrors(t *testing.T) {
	var nilWatcher *Watcher
	if got := nilWatcher.DrainErrors(); got != nil {
		t.Fatalf("nil watcher errors = %v", got)
	}

	w := &Watcher{Errors: make(chan error, 1)}
	if got := w.DrainErrors(); len(got) != 0 {
		t.Fatalf("idle watcher errors = %v", got)
	}

	overflow := errors.New("fsnotify: queue overflow")
	w.Errors <- overflow
	got := w.DrainErrors()
	if len(got) != 1 || !errors.Is(got[0], overflow) {
		t.Fatalf("errors = %v, want [%v]", got, overflow)
	}

	close(w.Errors)
	if got := w.DrainErrors(); len(got) != 0 {
		t.Fatalf("closed watcher errors = %v", got)
	}
}
