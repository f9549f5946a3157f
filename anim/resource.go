package anim

import (
	"fmt"
	"image"
	"slices"
	"sort"
)

// SetID names an animation set; the loader maps it to a file.
type SetID string

// TextureID names the sprite sheet an animation set draws from.
type TextureID string

// Sprite is a region of the set's texture. Pivot is relative to Rect.Min.
type Sprite struct {
	Rect  image.Rectangle
	Pivot image.Point
}

type Sample struct {
	Sprite   Sprite
	Duration float64
}

// Resource is one clip.
type Resource struct {
	Flags    Flags
	Duration float64
	Key      Key
	Samples  []Sample
	// AccDurations[i] is the time at which sample i ends.
	AccDurations []float64
	// Keys are sorted by frame.
	Keys []KeyFrame
}

// NewResource builds a clip and derives its timing from the samples.
func NewResource(key Key, flags Flags, samples []Sample, keys []KeyFrame) Resource {
	r := Resource{
		Flags:   flags,
		Key:     key,
		Samples: samples,
		Keys:    slices.Clone(keys),
	}
	r.AccDurations = make([]float64, len(samples))
	var acc float64
	for i, s := range samples {
		acc += s.Duration
		r.AccDurations[i] = acc
	}
	r.Duration = acc
	sort.SliceStable(r.Keys, func(i, j int) bool { return r.Keys[i].Frame < r.Keys[j].Frame })
	return r
}

func (r *Resource) Tag() Tag { return r.Key.Tag() }

// FrameAt returns the sample showing at time t: the first sample whose
// accumulated duration exceeds t, clamped to the last sample.
func (r *Resource) FrameAt(t float64) Frame {
	n := len(r.AccDurations)
	if n == 0 {
		return 0
	}
	idx := sort.Search(n, func(i int) bool { return r.AccDurations[i] > t })
	return Frame(min(idx, n-1))
}

func (r *Resource) Validate() error {
	if len(r.AccDurations) != len(r.Samples) {
		return fmt.Errorf("%w: clip %s has %d samples but %d accumulated durations",
			ErrInvalidResource, r.Key, len(r.Samples), len(r.AccDurations))
	}
	for i, s := range r.Samples {
		if s.Duration < 0 {
			return fmt.Errorf("%w: clip %s sample %d has negative duration", ErrInvalidResource, r.Key, i)
		}
	}
	if !slices.IsSorted(r.AccDurations) {
		return fmt.Errorf("%w: clip %s durations are not sorted", ErrInvalidResource, r.Key)
	}
	if n := len(r.AccDurations); n > 0 && r.AccDurations[n-1] != r.Duration {
		return fmt.Errorf("%w: clip %s duration %v does not match samples %v",
			ErrInvalidResource, r.Key, r.Duration, r.AccDurations[n-1])
	}
	for _, k := range r.Keys {
		if int(k.Frame) >= len(r.Samples) {
			return fmt.Errorf("%w: clip %s key %d on frame %d out of %d samples",
				ErrInvalidResource, r.Key, k.KeyTag, k.Frame, len(r.Samples))
		}
	}
	return nil
}

// SetResource is a loaded animation set. Build must run before the set is
// used for playback; the Library does it on load.
type SetResource struct {
	ID             SetID
	Tex            TextureID
	DefaultAnimIdx int
	Anims          []Resource
	Solved         []SolvedEntry

	keyToIdx map[Key]int
	solver   Solver
}

// Build validates the clips and derives the key index and the solver.
// A set without clips is invalid. Duplicate keys keep their first clip and
// report ErrDuplicateKey.
func (s *SetResource) Build() error {
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if len(s.Anims) == 0 {
		fail(fmt.Errorf("%w: set %q has no clips", ErrInvalidResource, s.ID))
	} else if s.DefaultAnimIdx < 0 || s.DefaultAnimIdx >= len(s.Anims) {
		fail(fmt.Errorf("%w: set %q default index %d out of %d clips",
			ErrInvalidResource, s.ID, s.DefaultAnimIdx, len(s.Anims)))
		s.DefaultAnimIdx = 0
	}

	s.keyToIdx = make(map[Key]int, len(s.Anims))
	for i := range s.Anims {
		a := &s.Anims[i]
		if err := a.Validate(); err != nil {
			fail(fmt.Errorf("set %q: %w", s.ID, err))
		}
		if _, dup := s.keyToIdx[a.Key]; dup {
			assert(false, "anim: duplicate key in set", "set", s.ID, "key", a.Key, "idx", i)
			fail(fmt.Errorf("%w: set %q key %s at idx %d", ErrDuplicateKey, s.ID, a.Key, i))
			continue
		}
		s.keyToIdx[a.Key] = i
	}

	s.solver = NewSolver(s.Solved)
	return firstErr
}

// Idx returns the clip index for key, or the default clip and false.
func (s *SetResource) Idx(k Key) (int, bool) {
	if i, ok := s.keyToIdx[k]; ok {
		return i, true
	}
	return s.DefaultAnimIdx, false
}

func (s *SetResource) Solver() Solver {
	return s.solver
}

// Anim returns the clip at idx or nil.
func (s *SetResource) Anim(idx int) *Resource {
	if s == nil || idx < 0 || idx >= len(s.Anims) {
		return nil
	}
	return &s.Anims[idx]
}
