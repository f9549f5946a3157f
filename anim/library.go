package anim

import (
	"fmt"
	"sort"
)

// Loader produces animation sets from storage.
type Loader interface {
	LoadAnimSet(id SetID) (*SetResource, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(id SetID) (*SetResource, error)

func (f LoaderFunc) LoadAnimSet(id SetID) (*SetResource, error) { return f(id) }

// Dependency is a resource a set holds on to while loaded, such as its
// texture. Retain is called once per load and Release once per final unload.
type Dependency interface {
	Retain(set *SetResource) error
	Release(set *SetResource)
}

type setSlot struct {
	res     *SetResource
	refs    int
	version uint32
}

// Library owns loaded animation sets and counts references to them.
type Library struct {
	loader Loader
	deps   []Dependency
	slots  map[SetID]*setSlot
}

func NewLibrary(loader Loader, deps ...Dependency) *Library {
	return &Library{
		loader: loader,
		deps:   deps,
		slots:  make(map[SetID]*setSlot),
	}
}

// Load acquires a reference to the set, loading it on first use.
func (l *Library) Load(id SetID) (*SetResource, error) {
	if s, ok := l.slots[id]; ok {
		s.refs++
		return s.res, nil
	}

	res, err := l.fetch(id)
	if err != nil {
		Logger().Error("anim: load set failed", "set", id, "err", err)
		return nil, err
	}

	l.slots[id] = &setSlot{res: res, refs: 1, version: 1}
	Logger().Debug("anim: loaded set", "set", id, "anims", len(res.Anims))
	return res, nil
}

func (l *Library) fetch(id SetID) (*SetResource, error) {
	if l.loader == nil {
		return nil, fmt.Errorf("anim: load set %q: %w", id, ErrUnknownSet)
	}
	res, err := l.loader.LoadAnimSet(id)
	if err != nil {
		return nil, fmt.Errorf("anim: load set %q: %w", id, err)
	}
	if res == nil {
		return nil, fmt.Errorf("anim: load set %q: %w", id, ErrUnknownSet)
	}
	if res.ID == "" {
		res.ID = id
	}
	if err := res.Build(); err != nil {
		return nil, fmt.Errorf("anim: build set %q: %w", id, err)
	}
	if err := l.retain(res); err != nil {
		return nil, fmt.Errorf("anim: load set %q dependencies: %w", id, err)
	}
	return res, nil
}

func (l *Library) retain(res *SetResource) error {
	for i, d := range l.deps {
		if err := d.Retain(res); err != nil {
			for j := i - 1; j >= 0; j-- {
				l.deps[j].Release(res)
			}
			return err
		}
	}
	return nil
}

func (l *Library) release(res *SetResource) {
	for i := len(l.deps) - 1; i >= 0; i-- {
		l.deps[i].Release(res)
	}
}

// Get returns a loaded set without taking a reference.
func (l *Library) Get(id SetID) *SetResource {
	if s, ok := l.slots[id]; ok {
		return s.res
	}
	return nil
}

// Unload drops one reference and frees the set when none remain.
func (l *Library) Unload(id SetID) {
	s, ok := l.slots[id]
	if !assert(ok, "anim: unload of a set that is not loaded", "set", id) {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	l.release(s.res)
	delete(l.slots, id)
	Logger().Debug("anim: unloaded set", "set", id)
}

// Reload replaces a loaded set in place. References are kept and the
// version is bumped. On failure the old set stays live.
func (l *Library) Reload(id SetID) error {
	s, ok := l.slots[id]
	if !ok {
		return fmt.Errorf("anim: reload set %q: %w", id, ErrUnknownSet)
	}

	res, err := l.fetch(id)
	if err != nil {
		Logger().Warn("anim: reload set failed, keeping previous version", "set", id, "err", err)
		return err
	}

	l.release(s.res)
	s.res = res
	s.version++
	Logger().Debug("anim: reloaded set", "set", id, "version", s.version)
	return nil
}

func (l *Library) Has(id SetID) bool {
	_, ok := l.slots[id]
	return ok
}

// Refs returns the reference count of a loaded set, 0 if not loaded.
func (l *Library) Refs(id SetID) int {
	if s, ok := l.slots[id]; ok {
		return s.refs
	}
	return 0
}

// Version starts at 1 on load and increases on every reload.
func (l *Library) Version(id SetID) uint32 {
	if s, ok := l.slots[id]; ok {
		return s.version
	}
	return 0
}

func (l *Library) Len() int {
	return len(l.slots)
}

// IDs returns the loaded set ids in sorted order.
func (l *Library) IDs() []SetID {
	ids := make([]SetID, 0, len(l.slots))
	for id := range l.slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
