package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animfold/anim"
)

// DrawOptions places a resolved frame with its pivot at (x, y). Flipped
// frames mirror around the pivot.
func DrawOptions(f anim.AnimatorFrame, x, y, scale float64) *ebiten.DrawImageOptions {
	if scale == 0 {
		scale = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(f.Sprite.Pivot.X), -float64(f.Sprite.Pivot.Y))
	if f.Flipped {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(f.ColorMod)
	op.Filter = ebiten.FilterNearest
	return op
}

// Draw renders an animator's current frame. It returns false when the
// animator has no frame or its texture is not loaded.
func Draw(screen *ebiten.Image, tex *Textures, eng *anim.Engine, h anim.Handle, x, y, scale float64) bool {
	f, ok := eng.ResolveFrame(h)
	if !ok || f.Sprite.Rect.Empty() {
		return false
	}
	sheet := tex.Image(f.Tex)
	if sheet == nil {
		return false
	}
	sub, ok := sheet.SubImage(f.Sprite.Rect).(*ebiten.Image)
	if !ok {
		return false
	}
	screen.DrawImage(sub, DrawOptions(f, x, y, scale))
	return true
}
