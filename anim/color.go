package anim

import (
	"image/color"
	"math"

	"github.com/milk9111/animfold/common"
)

var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func channelNorm(c uint8) float64 { return float64(c) / 255 }

func channelByte(v float64) uint8 {
	return uint8(math.Round(common.Clamp(v, 0, 1) * 255))
}

// MixMultiply multiplies two colors channel by channel in normalized space.
func MixMultiply(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: channelByte(channelNorm(a.R) * channelNorm(b.R)),
		G: channelByte(channelNorm(a.G) * channelNorm(b.G)),
		B: channelByte(channelNorm(a.B) * channelNorm(b.B)),
		A: channelByte(channelNorm(a.A) * channelNorm(b.A)),
	}
}

func LerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return channelByte(common.Lerp(channelNorm(x), channelNorm(y), t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// GradientMultiply samples colors at t in [0,1]. Between two stops a and b
// it blends from a toward a*b.
func GradientMultiply(colors []color.RGBA, t float64) color.RGBA {
	switch len(colors) {
	case 0:
		return White
	case 1:
		return colors[0]
	}

	t = common.Clamp(t, 0, 1)
	pos := t * float64(len(colors)-1)
	i := int(math.Floor(pos))
	j := min(i+1, len(colors)-1)
	u := pos - float64(i)

	return LerpRGBA(colors[i], MixMultiply(colors[i], colors[j]), u)
}
