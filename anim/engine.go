package anim

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/animfold/common"
	"github.com/milk9111/animfold/pool"
	"github.com/tanema/gween/ease"
)

// Engine advances every animator on a shared virtual clock. It is owned by
// the game loop and must only be used from one goroutine.
type Engine struct {
	lib        *Library
	cfg        Config
	animators  *pool.Pool[animator]
	globalTime float64
}

func NewEngine(lib *Library, cfg Config) *Engine {
	if cfg.AnimatorCapacity <= 0 {
		cfg.AnimatorCapacity = DefaultConfig().AnimatorCapacity
	}
	return &Engine{
		lib:       lib,
		cfg:       cfg,
		animators: pool.New[animator](cfg.AnimatorCapacity),
	}
}

func (e *Engine) Library() *Library { return e.lib }
func (e *Engine) Config() Config    { return e.cfg }

// Time returns the virtual clock in seconds.
func (e *Engine) Time() float64 { return e.globalTime }

// Len returns the number of live animators.
func (e *Engine) Len() int { return e.animators.Len() }

func (e *Engine) Alive(h Handle) bool { return e.animators.Alive(h) }

func (e *Engine) animator(h Handle) *animator {
	a := e.animators.Get(h)
	assert(a != nil, "anim: invalid animator handle", "handle", h)
	return a
}

// Generate creates an animator playing desc.Anim. It fails with an invalid
// handle when the set cannot be loaded or has nothing to play.
func (e *Engine) Generate(desc AnimatorDesc) (Handle, error) {
	set, err := e.lib.Load(desc.Set)
	if err != nil {
		return InvalidHandle, err
	}
	if set.Anim(set.DefaultAnimIdx) == nil {
		e.lib.Unload(desc.Set)
		return InvalidHandle, fmt.Errorf("anim: generate from set %q: %w: no default clip", desc.Set, ErrInvalidResource)
	}

	h, a := e.animators.Create(newAnimator(desc.Set, e.cfg.Hysteresis))
	a.handle = h
	a.dir.Set(desc.Dir)
	if _, ok := e.play(a, desc.Anim, desc.Playback); !ok {
		e.animators.Destroy(h)
		e.lib.Unload(desc.Set)
		return InvalidHandle, fmt.Errorf("anim: generate from set %q: %w", desc.Set, ErrInvalidResource)
	}

	if len(desc.ColorMods) > 0 {
		a.colorMods = slices.Clone(desc.ColorMods)
	}
	return h, nil
}

// Destroy releases the animator and its reference on the set.
func (e *Engine) Destroy(h Handle) {
	a := e.animator(h)
	if a == nil {
		return
	}
	e.lib.Unload(a.set)
	a.serial++
	a.listeners = nil
	e.animators.Destroy(h)
}

// Play switches to tag in the current direction. It reports whether the
// requested clip exists; otherwise the set's default clip plays.
func (e *Engine) Play(h Handle, tag Tag, desc PlaybackDesc) bool {
	a := e.animator(h)
	if a == nil {
		return false
	}
	return e.playInternal(a, tag, desc)
}

func (e *Engine) PlayDir(h Handle, tag Tag, dir CardinalDir, desc PlaybackDesc) bool {
	a := e.animator(h)
	if a == nil {
		return false
	}
	a.dir.Set(dir)
	return e.playInternal(a, tag, desc)
}

func (e *Engine) PlayVector(h Handle, tag Tag, dir cp.Vector, desc PlaybackDesc) bool {
	a := e.animator(h)
	if a == nil {
		return false
	}
	a.dir.SetVector(dir)
	return e.playInternal(a, tag, desc)
}

// SetDir changes direction and re-solves the current tag. Nothing happens
// when the direction is unchanged.
func (e *Engine) SetDir(h Handle, dir CardinalDir) bool {
	a := e.animator(h)
	if a == nil {
		return false
	}
	if !a.dir.Set(dir) {
		return true
	}
	return e.playInternal(a, a.state.tag, PlaybackDesc{})
}

func (e *Engine) SetDirVector(h Handle, dir cp.Vector) bool {
	a := e.animator(h)
	if a == nil {
		return false
	}
	if !a.dir.SetVector(dir) {
		return true
	}
	return e.playInternal(a, a.state.tag, PlaybackDesc{})
}

// SetSpeed changes the playback rate without moving the playhead.
func (e *Engine) SetSpeed(h Handle, speed float64) {
	a := e.animator(h)
	if a == nil {
		return
	}
	e.speedInternal(a, speed, true)
}

// Colorize sets the color gradient sampled over the clip's progress. An
// empty gradient renders white.
func (e *Engine) Colorize(h Handle, colors []color.RGBA) {
	a := e.animator(h)
	if a == nil {
		return
	}
	a.colorMods = slices.Clone(colors)
}

// SetColorEase reshapes progress before the gradient is sampled. nil means
// linear.
func (e *Engine) SetColorEase(h Handle, fn ease.TweenFunc) {
	a := e.animator(h)
	if a == nil {
		return
	}
	a.colorEase = fn
}

// Refresh re-solves the current clip of every animator playing from set,
// keeping their playheads. Call it after the set was reloaded.
func (e *Engine) Refresh(set SetID) int {
	var n int
	e.animators.Each(func(_ Handle, a *animator) bool {
		if a.set == set {
			e.playInternal(a, a.state.tag, PlaybackDesc{})
			n++
		}
		return true
	})
	return n
}

func (e *Engine) Playing(h Handle) bool {
	a := e.animators.Get(h)
	return a != nil && !a.finished()
}

func (e *Engine) PlayingTag(h Handle, tag Tag) bool {
	a := e.animators.Get(h)
	return a != nil && !a.finished() && a.state.tag == tag
}

func (e *Engine) FlippedX(h Handle) bool {
	a := e.animators.Get(h)
	return a != nil && a.flipped()
}

func (e *Engine) AnimSet(h Handle) SetID {
	if a := e.animators.Get(h); a != nil {
		return a.set
	}
	return ""
}

// AnimIdx returns the index of the playing clip in its set, -1 for a stale
// handle.
func (e *Engine) AnimIdx(h Handle) int {
	if a := e.animators.Get(h); a != nil {
		return a.state.idx
	}
	return -1
}

func (e *Engine) AnimTag(h Handle) Tag {
	if a := e.animators.Get(h); a != nil {
		return a.state.tag
	}
	return InvalidTag
}

func (e *Engine) AnimFrame(h Handle) Frame {
	if a := e.animators.Get(h); a != nil {
		return a.currentFrame
	}
	return InvalidFrame
}

// Progress returns the playhead position over the clip duration in [0,1].
func (e *Engine) Progress(h Handle) float64 {
	if a := e.animators.Get(h); a != nil {
		return a.progress
	}
	return 0
}

func (e *Engine) Dir(h Handle) CardinalDir {
	if a := e.animators.Get(h); a != nil {
		return a.dir.Dir
	}
	return DirUnset
}

// ResolveFrame returns the render snapshot of an animator.
func (e *Engine) ResolveFrame(h Handle) (AnimatorFrame, bool) {
	a := e.animators.Get(h)
	if a == nil {
		return AnimatorFrame{}, false
	}
	set := e.lib.Get(a.set)
	anim := set.Anim(a.state.idx)
	if anim == nil || len(anim.Samples) == 0 {
		return AnimatorFrame{}, false
	}

	idx := 0
	if a.currentFrame != InvalidFrame {
		idx = min(int(a.currentFrame), len(anim.Samples)-1)
	}
	return AnimatorFrame{
		Flipped:  a.flipped(),
		Tex:      set.Tex,
		Sprite:   anim.Samples[idx].Sprite,
		ColorMod: a.colorMod,
	}, true
}

func (e *Engine) playInternal(a *animator, tag Tag, desc PlaybackDesc) bool {
	found, _ := e.play(a, tag, desc)
	return found
}

// play reports whether the requested clip exists and whether any clip
// could be played at all.
func (e *Engine) play(a *animator, tag Tag, desc PlaybackDesc) (found, ok bool) {
	set := e.lib.Get(a.set)
	if !assert(set != nil && len(set.Anims) > 0, "anim: play on an empty or unloaded set", "set", a.set) {
		return false, false
	}

	solved := set.Solver().Solve(PackKey(tag, a.dir.Dir))
	idx, found := set.Idx(solved.Key)
	anim := set.Anim(idx)
	if !assert(anim != nil, "anim: solved index out of range", "set", a.set, "idx", idx) {
		return false, false
	}

	flags := FlagsNone
	if found {
		flags = anim.Flags
	}

	switch solved.FlipPolicy {
	case FlipAlways:
		a.setFlipped(true)
	case FlipNever:
		a.setFlipped(false)
	case FlipKeep:
		if a.dir.Bias != DirUnset {
			a.setFlipped(a.dir.Bias != anim.Key.Dir())
		}
	}

	restart := desc.Flags&PlaybackRestart != 0 || tag != a.state.tag
	if desc.Flags&PlaybackUseSpeed != 0 {
		e.speedInternal(a, desc.Speed, !restart)
	}

	a.state = animState{flags: flags, tag: tag, idx: idx}

	if restart {
		a.currentFrame = InvalidFrame
		a.startTime = e.globalTime
		a.uTime = 0
		a.stateFlags &^= StateFinished | StateSentEndEvent
		a.serial++
	}
	return found, true
}

func (e *Engine) speedInternal(a *animator, speed float64, preserveProgress bool) {
	speed = common.AvoidNegOrZero(speed)
	oldSpeed := common.AvoidNegOrZero(a.speed)

	if preserveProgress {
		elapsed := max(0, (e.globalTime-a.startTime)*oldSpeed)
		a.startTime = e.globalTime - elapsed/speed
	} else {
		a.startTime = e.globalTime
		a.currentFrame = 0
	}
	a.speed = speed
}
