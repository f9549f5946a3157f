package anim

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/animfold/common"
)

const DefaultHysteresis = 0.2

// DirState smooths direction input into a stable CardinalDir. Bias records
// the horizontal side of the last vector input so that clips authored for
// one side can be mirrored for the other.
type DirState struct {
	Dir        CardinalDir
	Bias       CardinalDir
	Hysteresis float64
}

func NewDirState(hysteresis float64) DirState {
	return DirState{Hysteresis: hysteresis}
}

// Set commits dir and clears the bias. It reports false when nothing
// changed.
func (s *DirState) Set(dir CardinalDir) bool {
	if dir == s.Dir && s.Bias == DirUnset {
		return false
	}
	s.Dir = dir
	s.Bias = DirUnset
	return true
}

// SetVector feeds analog input. A zero vector only updates the bias so the
// last facing is kept while idle. A new quadrant is committed once the input
// leaves the current direction by more than 45° plus the hysteresis band.
// The band widens the current quadrant rather than narrowing it to
// 45° minus the hysteresis, which would let a small wobble around a
// diagonal toggle the direction every frame.
func (s *DirState) SetVector(v cp.Vector) bool {
	oldDir, oldBias := s.Dir, s.Bias

	switch {
	case common.AlmostZero(v.X):
		s.Bias = DirUnset
	case v.X > 0:
		s.Bias = DirRight
	default:
		s.Bias = DirLeft
	}

	changed := func() bool { return oldDir != s.Dir || oldBias != s.Bias }

	if common.AlmostZero(v.Length()) {
		return changed()
	}

	angle := v.ToAngle()
	candidate := AngleToCardinalDir(angle)
	if candidate == s.Dir {
		return changed()
	}
	if s.Dir == DirUnset {
		s.Dir = candidate
		return changed()
	}

	d := math.Remainder(angle-s.Dir.Angle(), 2*math.Pi)
	if math.Abs(d) > s.border() {
		s.Dir = candidate
	}
	return changed()
}

func (s *DirState) border() float64 {
	return math.Pi/4 + s.Hysteresis
}
