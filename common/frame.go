package common

// Frame counts fixed simulation steps.
type Frame uint64

const (
	FixedHz   = 60.0
	FixedStep = 1.0 / FixedHz
)

func FramesToSec(frames Frame) float64 {
	return float64(frames) * FixedStep
}

func SecToFrames(sec float64) Frame {
	return Frame(sec*FixedHz + .5)
}

// FramePacket is handed to every system once per fixed step.
type FramePacket struct {
	Frame Frame
	Step  float64
}

// NewFramePacket returns a packet advancing by the fixed step.
func NewFramePacket(frame Frame) FramePacket {
	return FramePacket{Frame: frame, Step: FixedStep}
}
