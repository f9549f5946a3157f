package anim

import (
	"fmt"
	"strings"
)

// FlipPolicy decides how a solved clip is mirrored.
type FlipPolicy uint8

const (
	FlipUnknown FlipPolicy = iota
	// FlipKeep mirrors only when the direction bias disagrees with the
	// clip's authored facing.
	FlipKeep
	FlipAlways
	FlipNever
)

var flipPolicyNames = [...]string{"unknown", "keep", "flip", "dont_flip"}

func (p FlipPolicy) String() string {
	if int(p) < len(flipPolicyNames) {
		return flipPolicyNames[p]
	}
	return fmt.Sprintf("flip(%d)", uint8(p))
}

func ParseFlipPolicy(s string) (FlipPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range flipPolicyNames {
		if name == s {
			return FlipPolicy(i), nil
		}
	}
	return FlipUnknown, fmt.Errorf("anim: unknown flip policy %q", s)
}

type Solved struct {
	FlipPolicy FlipPolicy
	Key        Key
}

// SolvedEntry redirects requests for From to the clip stored under To.
type SolvedEntry struct {
	From       Key
	To         Key
	FlipPolicy FlipPolicy
}

// Solver maps a requested key to the clip actually played.
type Solver struct {
	m map[Key]Solved
}

// NewSolver builds a solver from entries. Entries with an invalid key are
// skipped; later entries win over earlier ones.
func NewSolver(entries []SolvedEntry) Solver {
	m := make(map[Key]Solved, len(entries))
	for _, e := range entries {
		if e.From == InvalidKey || e.To == InvalidKey {
			continue
		}
		m[e.From] = Solved{FlipPolicy: e.FlipPolicy, Key: e.To}
	}
	return Solver{m: m}
}

// Solve never fails: unknown keys resolve to themselves, unflipped.
func (s Solver) Solve(k Key) Solved {
	if solved, ok := s.m[k]; ok {
		return solved
	}
	return Solved{FlipPolicy: FlipNever, Key: k}
}

func (s Solver) Len() int {
	return len(s.m)
}
