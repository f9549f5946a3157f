package animset

import (
	"path/filepath"
	"strings"

	"github.com/milk9111/animfold/anim"
)

// Loader reads sets from YAML files named after their id and keeps the spec
// behind every set it produced, so callers can map tag names. Registering
// the loader as a library dependency drops specs of sets the library
// released or never accepted.
type Loader struct {
	specs map[*anim.SetResource]*SetSpec
}

var (
	_ anim.Loader     = (*Loader)(nil)
	_ anim.Dependency = (*Loader)(nil)
)

func NewLoader() *Loader {
	return &Loader{specs: make(map[*anim.SetResource]*SetSpec)}
}

func (l *Loader) LoadAnimSet(id anim.SetID) (*anim.SetResource, error) {
	spec, err := LoadSetSpec(string(id))
	if err != nil {
		return nil, err
	}
	res, err := spec.Resource(id)
	if err != nil {
		return nil, err
	}
	if err := res.Build(); err != nil {
		return nil, err
	}
	l.specs[res] = spec
	return res, nil
}

func (l *Loader) Retain(*anim.SetResource) error { return nil }

func (l *Loader) Release(res *anim.SetResource) {
	delete(l.specs, res)
}

// Spec returns the parsed file behind res, or nil when res did not come
// from this loader or was released.
func (l *Loader) Spec(res *anim.SetResource) *SetSpec {
	return l.specs[res]
}

// SetIDForPath maps a watched file back to the set it defines.
func SetIDForPath(path string) anim.SetID {
	base := filepath.Base(path)
	return anim.SetID(strings.TrimSuffix(base, filepath.Ext(base)))
}
