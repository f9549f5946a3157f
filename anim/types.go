// Package anim plays sprite animations keyed by tag and direction. Clips
// are sampled from a global clock, folded for looping and ping-pong
// playback, and keyframe events fire for every frame a step passes over.
package anim

import (
	"math"

	"github.com/milk9111/animfold/traversal"
)

// Tag names a logical animation (idle, walk, attack...).
type Tag uint32

const (
	DefaultTag Tag = 0
	InvalidTag Tag = math.MaxUint32
)

// KeyTag names a keyframe event kind. Values below KeyTagCustomOffset are
// reserved for the engine.
type KeyTag uint32

const (
	KeyTagEnd          KeyTag = 0
	KeyTagCustomOffset KeyTag = 1000
	InvalidKeyTag      KeyTag = math.MaxUint32
)

// Frame is a sample index inside a clip.
type Frame uint32

const InvalidFrame Frame = math.MaxUint32

// Flags hold the playback shape of a clip.
type Flags uint32

const (
	FlagLoop Flags = 1 << iota
	FlagPingPong

	FlagsNone Flags = 0
)

func (f Flags) Loop() bool     { return f&FlagLoop != 0 }
func (f Flags) PingPong() bool { return f&FlagPingPong != 0 }

// Mode picks the fold policy. PingPong wins over Loop.
func (f Flags) Mode() traversal.Mode {
	switch {
	case f.PingPong():
		return traversal.PingPong
	case f.Loop():
		return traversal.Loop
	default:
		return traversal.None
	}
}

// Param is one untyped keyframe parameter.
type Param uint64

func IntParam(v int64) Param     { return Param(uint64(v)) }
func FloatParam(v float64) Param { return Param(math.Float64bits(v)) }

func BoolParam(v bool) Param {
	if v {
		return 1
	}
	return 0
}

func (p Param) Int() int64     { return int64(p) }
func (p Param) Float() float64 { return math.Float64frombits(uint64(p)) }
func (p Param) Bool() bool     { return p != 0 }

// MaxParams is the number of parameters a keyframe carries.
const MaxParams = 3

// KeyFrame is an event bound to a sample index.
type KeyFrame struct {
	KeyTag KeyTag
	Frame  Frame
	Params [MaxParams]Param
}

func NewKeyFrame(keyTag KeyTag, frame Frame, params ...Param) KeyFrame {
	k := KeyFrame{KeyTag: keyTag, Frame: frame}
	assert(len(params) <= MaxParams, "anim: too many keyframe params", "count", len(params))
	copy(k.Params[:], params)
	return k
}
