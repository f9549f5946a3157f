package render

import (
	"errors"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animfold/anim"
)

type texture struct {
	src  image.Image
	img  *ebiten.Image
	refs int
}

// Textures ref-counts the sprite sheets of loaded sets. It is registered as
// an anim.Dependency so sheets live exactly as long as a set using them.
type Textures struct {
	load    ImageLoader
	entries map[anim.TextureID]*texture
}

var _ anim.Dependency = (*Textures)(nil)

func NewTextures(load ImageLoader) *Textures {
	return &Textures{load: load, entries: make(map[anim.TextureID]*texture)}
}

// Retain loads the set's texture on first use. A texture missing on disk
// is replaced by a placeholder sheet; decode errors fail the load.
func (t *Textures) Retain(set *anim.SetResource) error {
	if e, ok := t.entries[set.Tex]; ok {
		e.refs++
		return nil
	}

	var src image.Image
	if t.load != nil && set.Tex != "" {
		img, err := t.load(set.Tex)
		switch {
		case err == nil:
			src = img
		case errors.Is(err, os.ErrNotExist):
			anim.Logger().Warn("render: texture missing, using placeholder", "set", set.ID, "texture", set.Tex)
		default:
			return err
		}
	}
	if src == nil {
		src = Placeholder(set)
	}

	t.entries[set.Tex] = &texture{src: src, refs: 1}
	return nil
}

func (t *Textures) Release(set *anim.SetResource) {
	e, ok := t.entries[set.Tex]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	if e.img != nil {
		e.img.Deallocate()
	}
	delete(t.entries, set.Tex)
}

func (t *Textures) Refs(id anim.TextureID) int {
	if e, ok := t.entries[id]; ok {
		return e.refs
	}
	return 0
}

// Source returns the decoded sheet, or nil if the texture is not held.
func (t *Textures) Source(id anim.TextureID) image.Image {
	if e, ok := t.entries[id]; ok {
		return e.src
	}
	return nil
}

// Image returns the GPU copy of the sheet, uploading it on first use.
func (t *Textures) Image(id anim.TextureID) *ebiten.Image {
	e, ok := t.entries[id]
	if !ok {
		return nil
	}
	if e.img == nil {
		e.img = ebiten.NewImageFromImage(e.src)
	}
	return e.img
}
