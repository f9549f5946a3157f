package animset

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strconv"

	"github.com/milk9111/animfold/anim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("animset: invalid spec")

// SetSpec is the YAML form of an animation set.
type SetSpec struct {
	Name    string            `yaml:"name"`
	Texture string            `yaml:"texture"`
	Script  string            `yaml:"script"`
	Tags    map[string]uint32 `yaml:"tags"`
	// KeyTags are numbered from 0 and shifted past the reserved engine range.
	KeyTags map[string]uint32 `yaml:"key_tags"`
	Default KeyRefSpec        `yaml:"default"`
	Anims   []AnimSpec        `yaml:"anims"`
	Solver  []SolverSpec      `yaml:"solver"`
}

type KeyRefSpec struct {
	Tag string `yaml:"tag"`
	Dir string `yaml:"dir"`
}

// AnimSpec describes one clip. Frames come either from a sprite sheet row
// (row, col_start, frame_count, frame_w, frame_h, fps) or from an explicit
// samples list, which wins when present.
type AnimSpec struct {
	Tag        string       `yaml:"tag"`
	Dir        string       `yaml:"dir"`
	Flags      []string     `yaml:"flags"`
	Row        int          `yaml:"row"`
	ColStart   int          `yaml:"col_start"`
	FrameCount int          `yaml:"frame_count"`
	FrameW     int          `yaml:"frame_w"`
	FrameH     int          `yaml:"frame_h"`
	FPS        float64      `yaml:"fps"`
	PivotX     int          `yaml:"pivot_x"`
	PivotY     int          `yaml:"pivot_y"`
	Samples    []SampleSpec `yaml:"samples"`
	Keys       []KeySpec    `yaml:"keys"`
}

type SampleSpec struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	W        int     `yaml:"w"`
	H        int     `yaml:"h"`
	PivotX   int     `yaml:"pivot_x"`
	PivotY   int     `yaml:"pivot_y"`
	Duration float64 `yaml:"duration"`
}

type KeySpec struct {
	Key    string      `yaml:"key"`
	Frame  int         `yaml:"frame"`
	Params []ParamSpec `yaml:"params"`
}

// ParamSpec sets exactly one of its fields.
type ParamSpec struct {
	Int   *int64   `yaml:"int"`
	Float *float64 `yaml:"float"`
	Bool  *bool    `yaml:"bool"`
}

type SolverSpec struct {
	From KeyRefSpec `yaml:"from"`
	To   KeyRefSpec `yaml:"to"`
	Flip string     `yaml:"flip"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("animset: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("animset: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadSetSpec(name string) (*SetSpec, error) {
	spec, err := LoadSpec[SetSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TagID resolves a tag name. Numeric names are taken literally.
func (s *SetSpec) TagID(name string) (anim.Tag, bool) {
	if v, ok := s.Tags[name]; ok {
		return anim.Tag(v), true
	}
	if v, err := strconv.ParseUint(name, 10, 32); err == nil {
		return anim.Tag(v), true
	}
	return anim.InvalidTag, false
}

// KeyTagID resolves a key tag name. "end" is always the end event. Numeric
// names count custom key tags like the key_tags map does, so they are
// shifted past the reserved range.
func (s *SetSpec) KeyTagID(name string) (anim.KeyTag, bool) {
	if name == "end" {
		return anim.KeyTagEnd, true
	}
	if v, ok := s.KeyTags[name]; ok {
		return anim.KeyTagCustomOffset + anim.KeyTag(v), true
	}
	if v, err := strconv.ParseUint(name, 10, 32); err == nil && v < uint64(anim.InvalidKeyTag-anim.KeyTagCustomOffset) {
		return anim.KeyTagCustomOffset + anim.KeyTag(v), true
	}
	return anim.InvalidKeyTag, false
}

func (s *SetSpec) TagName(tag anim.Tag) string {
	for name, v := range s.Tags {
		if anim.Tag(v) == tag {
			return name
		}
	}
	return strconv.FormatUint(uint64(tag), 10)
}

func (s *SetSpec) KeyTagName(kt anim.KeyTag) string {
	if kt == anim.KeyTagEnd {
		return "end"
	}
	for name, v := range s.KeyTags {
		if anim.KeyTagCustomOffset+anim.KeyTag(v) == kt {
			return name
		}
	}
	if kt < anim.KeyTagCustomOffset || kt == anim.InvalidKeyTag {
		return fmt.Sprintf("reserved(%d)", kt)
	}
	return strconv.FormatUint(uint64(kt-anim.KeyTagCustomOffset), 10)
}

// TagNames returns the declared tag names ordered by tag value.
func (s *SetSpec) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for name := range s.Tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.Tags[names[i]] < s.Tags[names[j]]
	})
	return names
}

func (s *SetSpec) key(ref KeyRefSpec) (anim.Key, error) {
	tag, ok := s.TagID(ref.Tag)
	if !ok {
		return anim.InvalidKey, fmt.Errorf("%w: unknown tag %q", ErrInvalidSpec, ref.Tag)
	}
	dir, err := anim.ParseCardinalDir(ref.Dir)
	if err != nil {
		return anim.InvalidKey, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if dir == anim.DirUnset {
		dir = anim.DefaultDir
	}
	return anim.PackKey(tag, dir), nil
}

// Resource converts the set file into an unbuilt anim.SetResource.
func (s *SetSpec) Resource(id anim.SetID) (*anim.SetResource, error) {
	res := &anim.SetResource{
		ID:    id,
		Tex:   anim.TextureID(s.Texture),
		Anims: make([]anim.Resource, 0, len(s.Anims)),
	}

	for i, a := range s.Anims {
		clip, err := s.clip(a)
		if err != nil {
			return nil, fmt.Errorf("animset: %s anim %d (%s/%s): %w", id, i, a.Tag, a.Dir, err)
		}
		res.Anims = append(res.Anims, clip)
	}

	if s.Default.Tag != "" {
		def, err := s.key(s.Default)
		if err != nil {
			return nil, fmt.Errorf("animset: %s default: %w", id, err)
		}
		found := false
		for i := range res.Anims {
			if res.Anims[i].Key == def {
				res.DefaultAnimIdx = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("animset: %s default %s/%s: %w: no such anim", id, s.Default.Tag, s.Default.Dir, ErrInvalidSpec)
		}
	}

	for i, e := range s.Solver {
		from, err := s.key(e.From)
		if err != nil {
			return nil, fmt.Errorf("animset: %s solver %d: %w", id, i, err)
		}
		to, err := s.key(e.To)
		if err != nil {
			return nil, fmt.Errorf("animset: %s solver %d: %w", id, i, err)
		}
		flip, err := anim.ParseFlipPolicy(e.Flip)
		if err != nil {
			return nil, fmt.Errorf("animset: %s solver %d: %w: %v", id, i, ErrInvalidSpec, err)
		}
		res.Solved = append(res.Solved, anim.SolvedEntry{From: from, To: to, FlipPolicy: flip})
	}

	return res, nil
}

func (s *SetSpec) clip(a AnimSpec) (anim.Resource, error) {
	key, err := s.key(KeyRefSpec{Tag: a.Tag, Dir: a.Dir})
	if err != nil {
		return anim.Resource{}, err
	}

	var flags anim.Flags
	for _, f := range a.Flags {
		switch f {
		case "loop":
			flags |= anim.FlagLoop
		case "ping_pong":
			flags |= anim.FlagPingPong
		default:
			return anim.Resource{}, fmt.Errorf("%w: unknown flag %q", ErrInvalidSpec, f)
		}
	}

	samples, err := a.samples()
	if err != nil {
		return anim.Resource{}, err
	}

	keys := make([]anim.KeyFrame, 0, len(a.Keys))
	for _, k := range a.Keys {
		kt, ok := s.KeyTagID(k.Key)
		if !ok {
			return anim.Resource{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, k.Key)
		}
		if k.Frame < 0 || k.Frame >= len(samples) {
			return anim.Resource{}, fmt.Errorf("%w: key %q frame %d out of %d samples", ErrInvalidSpec, k.Key, k.Frame, len(samples))
		}
		if len(k.Params) > anim.MaxParams {
			return anim.Resource{}, fmt.Errorf("%w: key %q has %d params, max %d", ErrInvalidSpec, k.Key, len(k.Params), anim.MaxParams)
		}
		params := make([]anim.Param, 0, len(k.Params))
		for _, p := range k.Params {
			v, err := p.param()
			if err != nil {
				return anim.Resource{}, fmt.Errorf("key %q: %w", k.Key, err)
			}
			params = append(params, v)
		}
		keys = append(keys, anim.NewKeyFrame(kt, anim.Frame(k.Frame), params...))
	}

	return anim.NewResource(key, flags, samples, keys), nil
}

func (a AnimSpec) samples() ([]anim.Sample, error) {
	if len(a.Samples) > 0 {
		out := make([]anim.Sample, 0, len(a.Samples))
		for i, s := range a.Samples {
			if s.Duration < 0 {
				return nil, fmt.Errorf("%w: sample %d has negative duration", ErrInvalidSpec, i)
			}
			out = append(out, anim.Sample{
				Sprite: anim.Sprite{
					Rect:  image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H),
					Pivot: image.Pt(s.PivotX, s.PivotY),
				},
				Duration: s.Duration,
			})
		}
		return out, nil
	}

	if a.FrameCount <= 0 {
		return nil, nil
	}
	if a.FPS <= 0 || a.FrameW <= 0 || a.FrameH <= 0 {
		return nil, fmt.Errorf("%w: sheet row needs fps, frame_w and frame_h", ErrInvalidSpec)
	}

	d := 1 / a.FPS
	out := make([]anim.Sample, a.FrameCount)
	for i := range out {
		x := (a.ColStart + i) * a.FrameW
		y := a.Row * a.FrameH
		out[i] = anim.Sample{
			Sprite: anim.Sprite{
				Rect:  image.Rect(x, y, x+a.FrameW, y+a.FrameH),
				Pivot: image.Pt(a.PivotX, a.PivotY),
			},
			Duration: d,
		}
	}
	return out, nil
}

func (p ParamSpec) param() (anim.Param, error) {
	switch {
	case p.Int != nil && p.Float == nil && p.Bool == nil:
		return anim.IntParam(*p.Int), nil
	case p.Float != nil && p.Int == nil && p.Bool == nil:
		return anim.FloatParam(*p.Float), nil
	case p.Bool != nil && p.Int == nil && p.Float == nil:
		return anim.BoolParam(*p.Bool), nil
	default:
		return 0, fmt.Errorf("%w: a param must set exactly one of int, float, bool", ErrInvalidSpec)
	}
}
