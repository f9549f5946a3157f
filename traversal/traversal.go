package traversal

import (
	"github.com/milk9111/animfold/common"
	"golang.org/x/exp/constraints"
)

// Interval decides whether a span includes its upper bound.
type Interval uint8

const (
	HalfOpen Interval = iota
	Inclusive
)

func (iv Interval) contains(x, lo, hi float64) bool {
	if iv == Inclusive {
		return x >= lo && x <= hi
	}
	return x >= lo && x < hi
}

// Span is one contiguous range touched by a step. A valid span with
// Lo > Hi is empty.
type Span[T common.Number] struct {
	Valid bool
	Lo    T
	Hi    T
}

func (s Span[T]) Contains(v T, iv Interval) bool {
	return s.Valid && iv.contains(float64(v), float64(s.Lo), float64(s.Hi))
}

// Traversal describes everything a single step passed over: the partial
// span where it began, the partial span where it ended, and the number of
// complete sweeps in between.
type Traversal[T common.Number] struct {
	Dir            Dir
	FullSweepCount Count
	Begin          Span[T]
	End            Span[T]
	Interval       Interval
}

// Contains reports whether v was touched at least once. Any full sweep
// touches every value.
func (tr Traversal[T]) Contains(v T) bool {
	return tr.FullSweepCount > 0 || tr.Begin.Contains(v, tr.Interval) || tr.End.Contains(v, tr.Interval)
}

// Multiplicity reports how many times v was touched.
func (tr Traversal[T]) Multiplicity(v T) Count {
	var n Count
	if tr.Begin.Contains(v, tr.Interval) {
		n++
	}
	n += tr.FullSweepCount
	if tr.End.Contains(v, tr.Interval) {
		n++
	}
	return n
}

func (tr Traversal[T]) Any() bool {
	return tr.Begin.Valid || tr.End.Valid || tr.FullSweepCount > 0
}

func (tr Traversal[T]) Forward() bool  { return tr.Dir.Forward() }
func (tr Traversal[T]) Reversed() bool { return tr.Dir.Reversed() }
func (tr Traversal[T]) Sign() int8     { return tr.Dir.Sign() }

func orderedSpan[T common.Number](a, b T) Span[T] {
	if a > b {
		a, b = b, a
	}
	return Span[T]{Valid: true, Lo: a, Hi: b}
}

// Continuous describes a folded step in continuous parameter space using
// half-open spans. prev and cur are folded positions; seamCrossingCount and
// cycleCount come from the matching Fold.
func Continuous[T constraints.Float](mode Mode, prev, cur, length T, seamCrossingCount, cycleCount Count) Traversal[T] {
	tr := Traversal[T]{Dir: Forward, Interval: HalfOpen}
	if length <= 0 {
		return tr
	}

	switch mode {
	case PingPong:
		tr.Dir = DirOf(cur - prev)
		tr.Begin = orderedSpan(prev, cur)
		tr.FullSweepCount = max(0, 2*abs(cycleCount))
		return tr
	case Loop:
		if seamCrossingCount == 0 {
			tr.Dir = DirOf(cur - prev)
			tr.Begin = orderedSpan(prev, cur)
			return tr
		}

		tr.FullSweepCount = max(0, abs(seamCrossingCount)-1)
		tr.Dir = DirOf(seamCrossingCount)

		if seamCrossingCount > 0 {
			tr.Begin = Span[T]{Valid: true, Lo: prev, Hi: length}
			tr.End = Span[T]{Valid: true, Lo: 0, Hi: cur}
		} else {
			tr.Begin = Span[T]{Valid: true, Lo: cur, Hi: length}
			tr.End = Span[T]{Valid: true, Lo: 0, Hi: prev}
		}
		return tr
	default:
		tr.Dir = DirOf(cur - prev)
		tr.Begin = orderedSpan(prev, cur)
		return tr
	}
}

// Discrete describes a step in index space [0, length) using inclusive
// spans. The span starts after prev: prev itself was already visited by
// the previous step.
func Discrete(mode Mode, prev, cur, length int, seamCrossingCount Count) Traversal[int] {
	tr := Traversal[int]{Dir: Forward, Interval: Inclusive}
	if length <= 0 {
		return tr
	}

	prev = common.ModPositiveInt(prev, length)
	cur = common.ModPositiveInt(cur, length)

	if mode != Loop || seamCrossingCount == 0 {
		tr.Dir = DirOf(cur - prev)
		tr.Begin = stepSpan(tr.Dir, prev, cur)
		return tr
	}

	tr.FullSweepCount = max(0, abs(seamCrossingCount)-1)
	tr.Dir = DirOf(seamCrossingCount)

	if tr.Dir.Forward() {
		if prev+1 <= length-1 {
			tr.Begin = Span[int]{Valid: true, Lo: prev + 1, Hi: length - 1}
		}
		tr.End = Span[int]{Valid: true, Lo: 0, Hi: cur}
	} else {
		tr.Begin = Span[int]{Valid: true, Lo: cur, Hi: length - 1}
		if prev-1 >= 0 {
			tr.End = Span[int]{Valid: true, Lo: 0, Hi: prev - 1}
		}
	}
	return tr
}

func stepSpan(dir Dir, prev, cur int) Span[int] {
	if dir.Forward() {
		return Span[int]{Valid: true, Lo: prev + 1, Hi: cur}
	}
	return Span[int]{Valid: true, Lo: cur, Hi: prev - 1}
}

func abs(c Count) Count {
	if c < 0 {
		return -c
	}
	return c
}
