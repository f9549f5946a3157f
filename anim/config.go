package anim

import (
	"fmt"
	"strings"
)

// EventPolicy decides how keyframes swept several times in one step are
// reported.
type EventPolicy uint8

const (
	// EventsAtMostOnce fires a crossed keyframe once per step.
	EventsAtMostOnce EventPolicy = iota
	// EventsWithMultiplicity fires once per step with Event.Count set to
	// the number of crossings.
	EventsWithMultiplicity
)

func (p EventPolicy) String() string {
	switch p {
	case EventsWithMultiplicity:
		return "with_multiplicity"
	default:
		return "at_most_once"
	}
}

func ParseEventPolicy(s string) (EventPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "at_most_once":
		return EventsAtMostOnce, nil
	case "with_multiplicity":
		return EventsWithMultiplicity, nil
	default:
		return EventsAtMostOnce, fmt.Errorf("anim: unknown event policy %q", s)
	}
}

type Config struct {
	AnimatorCapacity int
	// Hysteresis widens the direction dead band, in radians.
	Hysteresis  float64
	EventPolicy EventPolicy
}

func DefaultConfig() Config {
	return Config{
		AnimatorCapacity: 64,
		Hysteresis:       DefaultHysteresis,
		EventPolicy:      EventsAtMostOnce,
	}
}
