// Package traversal folds an unbounded, monotonically advancing parameter
// onto a finite cycle and describes which parts of the cycle a step touched.
//
// Fold answers "where am I now" in continuous time; Discrete and Continuous
// answer "what did I pass over" so that keyframes bound to a position can be
// matched even when a single step spans several cycles.
package traversal

import "github.com/milk9111/animfold/common"

// Mode selects how a parameter is mapped onto [0, len].
type Mode uint8

const (
	// None clamps to [0, len].
	None Mode = iota
	// Loop wraps with period len.
	Loop
	// PingPong reflects at len with period 2*len.
	PingPong
)

func (m Mode) String() string {
	switch m {
	case Loop:
		return "loop"
	case PingPong:
		return "ping_pong"
	default:
		return "none"
	}
}

// Count is a signed number of seams or cycles crossed.
type Count = int32

// Dir is the travel direction, +1 forward or -1 backward. The zero value
// is treated as forward.
type Dir int8

const (
	Forward  Dir = 1
	Backward Dir = -1
)

// DirOf returns Forward for v >= 0 and Backward otherwise.
func DirOf[T common.Number](v T) Dir {
	if v >= 0 {
		return Forward
	}
	return Backward
}

func (d Dir) Forward() bool  { return d >= 0 }
func (d Dir) Reversed() bool { return !d.Forward() }

func (d Dir) Sign() int8 {
	if d.Forward() {
		return 1
	}
	return -1
}
