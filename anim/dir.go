package anim

import (
	"fmt"
	"math"
	"strings"
)

// CardinalDir is the facing an animation was authored for.
type CardinalDir uint32

const (
	DirUnset CardinalDir = iota
	DirFront
	DirLeft
	DirRight
	DirBack
)

const DefaultDir = DirRight

var dirNames = [...]string{"unset", "front", "left", "right", "back"}

func (d CardinalDir) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("dir(%d)", uint32(d))
}

func ParseCardinalDir(s string) (CardinalDir, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DirUnset, nil
	}
	for i, name := range dirNames {
		if name == s {
			return CardinalDir(i), nil
		}
	}
	return DirUnset, fmt.Errorf("anim: unknown direction %q", s)
}

// Angle returns the canonical angle in radians, counter-clockwise from +X
// with +Y pointing back (away from the viewer).
func (d CardinalDir) Angle() float64 {
	switch d {
	case DirFront:
		return -math.Pi / 2
	case DirLeft:
		return math.Pi
	case DirBack:
		return math.Pi / 2
	default:
		return 0
	}
}

// AngleToCardinalDir snaps an angle in (-π, π] to the nearest quadrant.
func AngleToCardinalDir(a float64) CardinalDir {
	const quarter = math.Pi / 4
	switch {
	case math.Abs(a) < quarter:
		return DirRight
	case a > 0 && a <= 3*quarter:
		return DirBack
	case a < 0 && a >= -3*quarter:
		return DirFront
	default:
		return DirLeft
	}
}
