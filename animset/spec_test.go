package animset

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/animfold/anim"
)

func TestHeroSpecResource(t *testing.T) {
	spec, err := LoadSetSpec("hero")
	if err != nil {
		t.Fatalf("load hero: %v", err)
	}
	res, err := spec.Resource("hero")
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if err := res.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(res.Anims) != 9 {
		t.Fatalf("expected 9 anims, got %d", len(res.Anims))
	}
	if res.Tex != "hero.png" || res.DefaultAnimIdx != 0 {
		t.Fatalf("unexpected set header tex=%q default=%d", res.Tex, res.DefaultAnimIdx)
	}

	walkTag, _ := spec.TagID("walk")
	idx, ok := res.Idx(anim.PackKey(walkTag, anim.DirRight))
	if !ok {
		t.Fatalf("walk right missing")
	}
	walk := res.Anim(idx)
	if !walk.Flags.Loop() || len(walk.Samples) != 8 {
		t.Fatalf("unexpected walk clip %+v", walk.Flags)
	}
	if math.Abs(walk.Duration-8.0/12.0) > 1e-9 {
		t.Fatalf("walk duration: expected %v, got %v", 8.0/12.0, walk.Duration)
	}
	if walk.Samples[1].Sprite.Rect.Min.X != 32 || walk.Samples[1].Sprite.Rect.Min.Y != 96 {
		t.Fatalf("sheet row mapped to %v", walk.Samples[1].Sprite.Rect)
	}

	attackTag, _ := spec.TagID("attack")
	attack := res.Anim(mustIdx(t, res, anim.PackKey(attackTag, anim.DirRight)))
	if attack.Flags != anim.FlagsNone || len(attack.Keys) != 3 {
		t.Fatalf("unexpected attack clip flags=%d keys=%d", attack.Flags, len(attack.Keys))
	}
	hit := attack.Keys[1]
	if spec.KeyTagName(hit.KeyTag) != "hit" || hit.Frame != 2 {
		t.Fatalf("expected hit on frame 2, got %s@%d", spec.KeyTagName(hit.KeyTag), hit.Frame)
	}
	if hit.Params[0].Int() != 3 || hit.Params[1].Float() != 1.5 || !hit.Params[2].Bool() {
		t.Fatalf("unexpected hit params %v", hit.Params)
	}
	if attack.Samples[3].Sprite.Rect.Dx() != 48 {
		t.Fatalf("explicit samples ignored: %v", attack.Samples[3].Sprite.Rect)
	}

	solved := res.Solver().Solve(anim.PackKey(walkTag, anim.DirLeft))
	if solved.FlipPolicy != anim.FlipAlways || solved.Key != anim.PackKey(walkTag, anim.DirRight) {
		t.Fatalf("unexpected walk left solve %+v", solved)
	}
}

func mustIdx(t *testing.T, res *anim.SetResource, k anim.Key) int {
	t.Helper()
	idx, ok := res.Idx(k)
	if !ok {
		t.Fatalf("missing clip %s", k)
	}
	return idx
}

func TestTagNames(t *testing.T) {
	spec := &SetSpec{
		Tags:    map[string]uint32{"idle": 0, "run": 4},
		KeyTags: map[string]uint32{"step": 0, "land": 2},
	}

	if id, ok := spec.TagID("run"); !ok || id != 4 {
		t.Fatalf("run: got %d %v", id, ok)
	}
	if id, ok := spec.TagID("7"); !ok || id != 7 {
		t.Fatalf("numeric tag: got %d %v", id, ok)
	}
	if _, ok := spec.TagID("fly"); ok {
		t.Fatalf("unknown tag resolved")
	}
	if id, ok := spec.KeyTagID("land"); !ok || id != anim.KeyTagCustomOffset+2 {
		t.Fatalf("land: got %d %v", id, ok)
	}
	if id, ok := spec.KeyTagID("end"); !ok || id != anim.KeyTagEnd {
		t.Fatalf("end: got %d %v", id, ok)
	}
	if got := spec.KeyTagName(anim.KeyTagCustomOffset); got != "step" {
		t.Fatalf("expected step, got %q", got)
	}
	if got := spec.TagName(9); got != "9" {
		t.Fatalf("expected numeric fallback, got %q", got)
	}
	names := spec.TagNames()
	if len(names) != 2 || names[0] != "idle" || names[1] != "run" {
		t.Fatalf("unexpected tag order %v", names)
	}
}

func TestKeyTagNamesRoundTrip(t *testing.T) {
	spec := &SetSpec{KeyTags: map[string]uint32{"step": 0, "land": 2}}

	cases := []struct {
		name string
		want anim.KeyTag
	}{
		{"end", anim.KeyTagEnd},
		{"step", anim.KeyTagCustomOffset},
		{"land", anim.KeyTagCustomOffset + 2},
		{"1", anim.KeyTagCustomOffset + 1},
		{"7", anim.KeyTagCustomOffset + 7},
	}
	for _, c := range cases {
		id, ok := spec.KeyTagID(c.name)
		if !ok || id != c.want {
			t.Fatalf("%s: expected %d, got %d %v", c.name, c.want, id, ok)
		}
		if got := spec.KeyTagName(id); got != c.name {
			t.Fatalf("%s: name round trip gave %q", c.name, got)
		}
	}

	// A numeric name that matches a declared value resolves to the same tag.
	if id, _ := spec.KeyTagID("2"); spec.KeyTagName(id) != "land" {
		t.Fatalf("expected 2 to name land, got %q", spec.KeyTagName(id))
	}
	if got := spec.KeyTagName(5); got != "reserved(5)" {
		t.Fatalf("expected reserved name, got %q", got)
	}
	if _, ok := spec.KeyTagID("4294967295"); ok {
		t.Fatalf("key tag past the custom range resolved")
	}
}

func TestSpecErrors(t *testing.T) {
	one := func(v int64) *int64 { return &v }
	half := 0.5

	base := func() *SetSpec {
		return &SetSpec{
			Tags:    map[string]uint32{"idle": 0},
			KeyTags: map[string]uint32{"step": 0},
			Anims: []AnimSpec{{
				Tag:     "idle",
				Dir:     "right",
				Samples: []SampleSpec{{W: 8, H: 8, Duration: 0.1}, {W: 8, H: 8, Duration: 0.1}},
			}},
		}
	}

	cases := []struct {
		name   string
		mutate func(s *SetSpec)
	}{
		{"unknown_tag", func(s *SetSpec) { s.Anims[0].Tag = "fly" }},
		{"bad_dir", func(s *SetSpec) { s.Anims[0].Dir = "up" }},
		{"bad_flag", func(s *SetSpec) { s.Anims[0].Flags = []string{"bounce"} }},
		{"negative_duration", func(s *SetSpec) { s.Anims[0].Samples[0].Duration = -1 }},
		{"sheet_without_fps", func(s *SetSpec) {
			s.Anims[0].Samples = nil
			s.Anims[0].FrameCount = 2
			s.Anims[0].FrameW, s.Anims[0].FrameH = 8, 8
		}},
		{"unknown_key", func(s *SetSpec) { s.Anims[0].Keys = []KeySpec{{Key: "jump"}} }},
		{"key_out_of_range", func(s *SetSpec) { s.Anims[0].Keys = []KeySpec{{Key: "step", Frame: 2}} }},
		{"too_many_params", func(s *SetSpec) {
			p := ParamSpec{Int: one(1)}
			s.Anims[0].Keys = []KeySpec{{Key: "step", Params: []ParamSpec{p, p, p, p}}}
		}},
		{"ambiguous_param", func(s *SetSpec) {
			s.Anims[0].Keys = []KeySpec{{Key: "step", Params: []ParamSpec{{Int: one(1), Float: &half}}}}
		}},
		{"empty_param", func(s *SetSpec) {
			s.Anims[0].Keys = []KeySpec{{Key: "step", Params: []ParamSpec{{}}}}
		}},
		{"missing_default", func(s *SetSpec) { s.Default = KeyRefSpec{Tag: "idle", Dir: "left"} }},
		{"bad_flip", func(s *SetSpec) {
			s.Solver = []SolverSpec{{From: KeyRefSpec{Tag: "idle", Dir: "left"}, To: KeyRefSpec{Tag: "idle"}, Flip: "mirror"}}
		}},
	}

	if _, err := base().Resource("ok"); err != nil {
		t.Fatalf("base spec should convert: %v", err)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := base()
			c.mutate(s)
			_, err := s.Resource("broken")
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestEmptyDirDefaultsRight(t *testing.T) {
	spec := &SetSpec{
		Tags:  map[string]uint32{"idle": 0},
		Anims: []AnimSpec{{Tag: "idle", Samples: []SampleSpec{{W: 1, H: 1, Duration: 1}}}},
	}
	res, err := spec.Resource("s")
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if res.Anims[0].Key != anim.PackKey(0, anim.DefaultDir) {
		t.Fatalf("expected default dir, got %s", res.Anims[0].Key)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, spec, err := LoadConfig("engine")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AnimatorCapacity != 128 || cfg.EventPolicy != anim.EventsAtMostOnce || cfg.Hysteresis != 0.2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if spec.LogLevel != "info" {
		t.Fatalf("expected log level info, got %q", spec.LogLevel)
	}

	if cfg, _, err := LoadConfig(""); err != nil || cfg != anim.DefaultConfig() {
		t.Fatalf("empty name should yield defaults, got %+v %v", cfg, err)
	}

	neg := -1.0
	if _, err := (ConfigSpec{Hysteresis: &neg}).Config(); err == nil {
		t.Fatalf("negative hysteresis accepted")
	}
	if _, err := (ConfigSpec{EventPolicy: "sometimes"}).Config(); err == nil {
		t.Fatalf("unknown policy accepted")
	}
	cfg, err = ConfigSpec{EventPolicy: "with_multiplicity"}.Config()
	if err != nil || cfg.EventPolicy != anim.EventsWithMultiplicity || cfg.AnimatorCapacity != anim.DefaultConfig().AnimatorCapacity {
		t.Fatalf("unexpected config %+v %v", cfg, err)
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, data, script string
	}{
		{"hero", "hero.yaml", "scripts/hero.tengo"},
		{"animsets/hero.yaml", "hero.yaml", "scripts/hero.yaml"},
		{"animsets/scripts/hero", "scripts/hero.yaml", "scripts/hero.tengo"},
		{"data/hero.yml", "hero.yml", "scripts/data/hero.yml"},
		{"scripts/boss.tengo", "scripts/boss.tengo", "scripts/boss.tengo"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanDataPath(c.in); got != c.data {
				t.Fatalf("data: expected %q, got %q", c.data, got)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("script: expected %q, got %q", c.script, got)
			}
		})
	}
}
