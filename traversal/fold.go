package traversal

import (
	"math"

	"github.com/milk9111/animfold/common"
	"golang.org/x/exp/constraints"
)

// Folded is a parameter step mapped onto a finite cycle.
type Folded[T constraints.Float] struct {
	// Pos is the folded position of the step end.
	Pos T
	// SeamCrossingCount is how many times the step crossed a cycle
	// boundary. In PingPong every touch of either endpoint is a seam.
	SeamCrossingCount Count
	// CycleCount is how many full periods were crossed.
	CycleCount Count
	Dir        Dir
}

func seamCrossingIndex[T constraints.Float](u, length T) Count {
	if length <= 0 {
		return 0
	}
	return Count(math.Floor(float64(u) / float64(length)))
}

func cycleIndex[T constraints.Float](mode Mode, u, length T) Count {
	if length <= 0 {
		return 0
	}

	switch mode {
	case Loop:
		return Count(math.Floor(float64(u) / float64(length)))
	case PingPong:
		return Count(math.Floor(float64(u) / (2 * float64(length))))
	default:
		return 0
	}
}

// Fold maps the step [u0, u1] onto a cycle of the given length.
// length must be positive; otherwise the zero value is returned.
func Fold[T constraints.Float](mode Mode, u0, u1, length T) Folded[T] {
	switch mode {
	case PingPong:
		return FoldPingPong(u0, u1, length)
	case Loop:
		return FoldLoop(u0, u1, length)
	default:
		return FoldNone(u0, u1, length)
	}
}

func FoldNone[T constraints.Float](u0, u1, length T) Folded[T] {
	if length <= 0 {
		return Folded[T]{}
	}
	return Folded[T]{
		Pos: common.Clamp(u1, 0, length),
		Dir: DirOf(u1 - u0),
	}
}

func FoldLoop[T constraints.Float](u0, u1, length T) Folded[T] {
	if length <= 0 {
		return Folded[T]{}
	}

	seamDelta := seamCrossingIndex(u1, length) - seamCrossingIndex(u0, length)
	cycleDelta := cycleIndex(Loop, u1, length) - cycleIndex(Loop, u0, length)

	dir := DirOf(u1 - u0)
	if seamDelta != 0 {
		dir = DirOf(seamDelta)
	}

	return Folded[T]{
		Pos:               common.ModPositive(u1, length),
		SeamCrossingCount: seamDelta,
		CycleCount:        cycleDelta,
		Dir:               dir,
	}
}

func FoldPingPong[T constraints.Float](u0, u1, length T) Folded[T] {
	if length <= 0 {
		return Folded[T]{}
	}

	period := 2 * length
	x := common.ModPositive(u1, period)

	// Forward while climbing [0, len], backward on the way down.
	dir := DirOf(length - x)
	pos := x
	if dir.Reversed() {
		pos = period - x
	}

	a, b := u0, u1
	if a > b {
		a, b = b, a
	}

	return Folded[T]{
		Pos:               pos,
		SeamCrossingCount: seamCrossingIndex(b, length) - seamCrossingIndex(a, length),
		CycleCount:        cycleIndex(PingPong, b, length) - cycleIndex(PingPong, a, length),
		Dir:               dir,
	}
}

// Repeat wraps t into [0, duration).
func Repeat[T constraints.Float](t, duration T) T {
	if duration <= 0 {
		return 0
	}
	return common.ModPositive(t, duration)
}

// Oneshot clamps t into [0, duration].
func Oneshot[T constraints.Float](t, duration T) T {
	return common.Clamp(t, 0, duration)
}

// PingPongRepeat is a triangle wave of amplitude duration.
func PingPongRepeat[T constraints.Float](t, duration T) T {
	period := 2 * duration
	x := Repeat(t, period)
	if x <= duration {
		return x
	}
	return period - x
}

// PingPongOnce plays up then down once and holds at 0.
func PingPongOnce[T constraints.Float](t, duration T) T {
	period := 2 * duration
	x := common.Clamp(t, 0, period)
	if x <= duration {
		return x
	}
	return period - x
}
