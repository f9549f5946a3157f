package anim

import (
	"github.com/milk9111/animfold/common"
	"github.com/milk9111/animfold/traversal"
)

// Tick advances the clock by one fixed step and steps every playing
// animator in pool order. Listeners run inline and must not call Tick.
func (e *Engine) Tick(f common.FramePacket) {
	e.globalTime += f.Step
	if e.animators.Len() == 0 {
		return
	}

	e.animators.Each(func(h Handle, a *animator) bool {
		if a.finished() {
			return true
		}

		anim := e.lib.Get(a.set).Anim(a.state.idx)
		if !assert(anim != nil, "anim: animator clip missing", "handle", h, "set", a.set, "idx", a.state.idx) {
			return true
		}

		if len(anim.Samples) == 0 || anim.Duration <= 0 {
			a.currentFrame = 0
			return true
		}

		u0 := a.uTime
		u1 := max(0, (e.globalTime-a.startTime)*a.speed)
		a.uTime = u1

		e.stepAnimator(a, anim, a.state.flags.Mode(), u0, u1)
		return true
	})
}

func keyFrameIndex(k KeyFrame) int { return int(k.Frame) }

func (e *Engine) stepAnimator(a *animator, anim *Resource, mode traversal.Mode, u0, u1 float64) {
	folded := traversal.Fold(mode, u0, u1, anim.Duration)
	if mode == traversal.PingPong && !a.state.flags.Loop() {
		// A finished round trip rests on the first frame.
		folded.Pos = traversal.PingPongOnce(u1, anim.Duration)
	}

	firstStep := a.currentFrame == InvalidFrame
	prevFrame := a.currentFrame
	if firstStep {
		prevFrame = 0
	}
	curFrame := anim.FrameAt(folded.Pos)

	a.currentFrame = curFrame
	a.progress = folded.Pos / anim.Duration

	h, serial, tag := a.handle, a.serial, anim.Tag()
	interrupted := func() bool {
		return e.animators.Get(h) != a || a.serial != serial
	}

	if len(anim.Keys) > 0 {
		// Frame 0 is never inside a traversal that starts after prevFrame.
		if firstStep {
			for _, k := range anim.Keys {
				if k.Frame != 0 {
					break
				}
				e.fire(a, tag, k, 1)
				if interrupted() {
					return
				}
			}
		}

		tr := traversal.Discrete(mode, int(prevFrame), int(curFrame), len(anim.Samples), folded.SeamCrossingCount)
		switch e.cfg.EventPolicy {
		case EventsWithMultiplicity:
			traversal.FireWithMultiplicity(tr, anim.Keys, keyFrameIndex, func(k KeyFrame, n traversal.Count) {
				if !interrupted() {
					e.fire(a, tag, k, int(n))
				}
			})
		default:
			traversal.FireAtMostOnce(tr, anim.Keys, keyFrameIndex, func(k KeyFrame) {
				if !interrupted() {
					e.fire(a, tag, k, 1)
				}
			})
		}
		if interrupted() {
			return
		}
	}

	if stepFinished(a.state.flags, anim, u1) {
		a.stateFlags |= StateFinished
	}

	if a.finished() {
		if !a.sentEndEvent() {
			a.stateFlags |= StateSentEndEvent
			e.fire(a, tag, KeyFrame{KeyTag: KeyTagEnd, Frame: curFrame}, 1)
			if interrupted() {
				return
			}
		}
	} else {
		a.stateFlags &^= StateSentEndEvent
	}

	e.updateColor(a)
}

// stepFinished reports whether u1 reached the end of a non-looping clip.
// Finished animators are not stepped again until a restart resets uTime,
// so this holds for one step per playback. It is level-triggered because a
// play without restart can swap in a one-shot clip whose end already lies
// behind the playhead.
func stepFinished(flags Flags, anim *Resource, u1 float64) bool {
	if flags.Loop() {
		return false
	}

	period := anim.Duration
	if flags.PingPong() {
		period *= 2
	}
	return u1 >= period
}

func (e *Engine) updateColor(a *animator) {
	if len(a.colorMods) == 0 {
		a.colorMod = White
		return
	}
	t := a.progress
	if a.colorEase != nil {
		t = float64(a.colorEase(float32(t), 0, 1, 1))
	}
	a.colorMod = GradientMultiply(a.colorMods, t)
}
