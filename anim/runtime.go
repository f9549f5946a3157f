package anim

import (
	"image/color"
	"math"

	"github.com/milk9111/animfold/pool"
	"github.com/tanema/gween/ease"
)

// Handle references a live animator. Handles of destroyed animators go
// stale and every Engine method treats them as a no-op.
type Handle = pool.Handle

const InvalidHandle = pool.InvalidHandle

type PlaybackFlags uint16

const (
	// PlaybackRestart restarts the clip even if the tag is already playing.
	PlaybackRestart PlaybackFlags = 1 << iota
	// PlaybackUseSpeed applies PlaybackDesc.Speed.
	PlaybackUseSpeed

	PlaybackNone PlaybackFlags = 0
)

type PlaybackDesc struct {
	Speed float64
	Flags PlaybackFlags
}

func DefaultPlayback() PlaybackDesc {
	return PlaybackDesc{Speed: 1}
}

// AnimatorDesc describes a new animator.
type AnimatorDesc struct {
	Set       SetID
	Anim      Tag
	Dir       CardinalDir
	Playback  PlaybackDesc
	ColorMods []color.RGBA
}

func NewAnimatorDesc(set SetID) AnimatorDesc {
	return AnimatorDesc{
		Set:      set,
		Anim:     DefaultTag,
		Dir:      DefaultDir,
		Playback: DefaultPlayback(),
	}
}

type StateFlags uint8

const (
	StateFinished StateFlags = 1 << iota
	StateSentEndEvent
	StateFlipped
)

// AnimatorFrame is what a renderer needs to draw an animator.
type AnimatorFrame struct {
	Flipped  bool
	Tex      TextureID
	Sprite   Sprite
	ColorMod color.RGBA
}

// Event is passed to listeners. Count is the number of times the keyframe
// was crossed during the step; it is always 1 under EventsAtMostOnce.
type Event struct {
	Animator Handle
	Tag      Tag
	Key      KeyFrame
	Count    int
}

type ListenerFunc func(Event)

type ListenerID uint32

const InvalidListenerID ListenerID = math.MaxUint32

// Listener filters on Tag and KeyTag; InvalidTag and InvalidKeyTag match
// anything.
type Listener struct {
	ID     ListenerID
	Tag    Tag
	KeyTag KeyTag
	Fn     ListenerFunc
	Once   bool
}

func (l *Listener) matches(tag Tag, keyTag KeyTag) bool {
	if l.Tag != InvalidTag && l.Tag != tag {
		return false
	}
	return l.KeyTag == InvalidKeyTag || l.KeyTag == keyTag
}

type ListenerOption func(*Listener)

func WithTag(tag Tag) ListenerOption {
	return func(l *Listener) { l.Tag = tag }
}

func WithKeyTag(keyTag KeyTag) ListenerOption {
	return func(l *Listener) { l.KeyTag = keyTag }
}

// animState is snapshotted when a clip starts so later edits of the set do
// not change a clip mid-play.
type animState struct {
	flags Flags
	tag   Tag
	idx   int
}

type animator struct {
	handle     Handle
	set        SetID
	state      animState
	dir        DirState
	stateFlags StateFlags

	startTime    float64
	speed        float64
	uTime        float64
	progress     float64
	currentFrame Frame

	colorMod  color.RGBA
	colorMods []color.RGBA
	colorEase ease.TweenFunc

	listeners         []Listener
	listenerIDCounter ListenerID

	// serial changes whenever playback restarts so a step can tell that a
	// listener replaced the clip under it.
	serial uint32
}

func newAnimator(set SetID, hysteresis float64) animator {
	return animator{
		set:          set,
		state:        animState{tag: InvalidTag},
		dir:          NewDirState(hysteresis),
		speed:        1,
		currentFrame: InvalidFrame,
		colorMod:     White,
	}
}

func (a *animator) finished() bool     { return a.stateFlags&StateFinished != 0 }
func (a *animator) sentEndEvent() bool { return a.stateFlags&StateSentEndEvent != 0 }
func (a *animator) flipped() bool      { return a.stateFlags&StateFlipped != 0 }

func (a *animator) setFlipped(v bool) {
	if v {
		a.stateFlags |= StateFlipped
	} else {
		a.stateFlags &^= StateFlipped
	}
}
