package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/milk9111/animfold/anim"
	"github.com/milk9111/animfold/animset"
)

// ImageLoader decodes the sprite sheet for a texture id.
type ImageLoader func(id anim.TextureID) (image.Image, error)

// FileLoader looks for a texture next to the set files, then under the
// given directories.
func FileLoader(dirs ...string) ImageLoader {
	return func(id anim.TextureID) (image.Image, error) {
		if id == "" {
			return nil, fmt.Errorf("render: empty texture id")
		}
		path := string(id)
		tried := []string{filepath.Join(animset.DiskDir, path), path}
		for _, dir := range dirs {
			tried = append(tried, filepath.Join(dir, path), filepath.Join(dir, filepath.Base(path)))
		}
		for _, p := range tried {
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			img, _, err := image.Decode(bytes.NewReader(b))
			if err != nil {
				return nil, fmt.Errorf("render: decode %s: %w", p, err)
			}
			return img, nil
		}
		return nil, fmt.Errorf("render: texture %s: %w", id, os.ErrNotExist)
	}
}
