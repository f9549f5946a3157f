package anim

import (
	"errors"
	"testing"
)

type countingDep struct {
	retained map[SetID]int
	fail     bool
}

func (d *countingDep) Retain(set *SetResource) error {
	if d.fail {
		return errors.New("texture missing")
	}
	d.retained[set.ID]++
	return nil
}

func (d *countingDep) Release(set *SetResource) {
	d.retained[set.ID]--
}

func TestLibraryRefCount(t *testing.T) {
	dep := &countingDep{retained: map[SetID]int{}}
	lib := NewLibrary(LoaderFunc(heroLoader), dep)

	a, err := lib.Load("hero")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, _ := lib.Load("hero")
	if a != b {
		t.Fatalf("second load should share the set")
	}
	if lib.Refs("hero") != 2 || dep.retained["hero"] != 1 {
		t.Fatalf("expected 2 refs and one retain, got %d refs %d retains", lib.Refs("hero"), dep.retained["hero"])
	}

	lib.Unload("hero")
	if !lib.Has("hero") || lib.Get("hero") == nil {
		t.Fatalf("set should survive while referenced")
	}
	lib.Unload("hero")
	if lib.Has("hero") || lib.Len() != 0 || dep.retained["hero"] != 0 {
		t.Fatalf("set should be released at zero refs")
	}

	lib.Unload("hero")
}

func TestLibraryLoadFailures(t *testing.T) {
	cases := []struct {
		name    string
		loader  Loader
		wantErr error
	}{
		{"unknown", LoaderFunc(heroLoader), ErrUnknownSet},
		{"nil_set", LoaderFunc(func(SetID) (*SetResource, error) { return nil, nil }), ErrUnknownSet},
		{"duplicate_key", LoaderFunc(func(SetID) (*SetResource, error) {
			s := heroSet()
			s.Anims = append(s.Anims, s.Anims[1])
			return s, nil
		}), ErrDuplicateKey},
		{"no_clips", LoaderFunc(func(id SetID) (*SetResource, error) {
			return &SetResource{ID: id}, nil
		}), ErrInvalidResource},
		{"invalid_default", LoaderFunc(func(SetID) (*SetResource, error) {
			s := heroSet()
			s.DefaultAnimIdx = 12
			return s, nil
		}), ErrInvalidResource},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lib := NewLibrary(c.loader)
			if _, err := lib.Load("villain"); !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if lib.Has("villain") {
				t.Fatalf("failed load must not leave a slot behind")
			}
		})
	}

	dep := &countingDep{retained: map[SetID]int{}, fail: true}
	lib := NewLibrary(LoaderFunc(heroLoader), dep)
	if _, err := lib.Load("hero"); err == nil {
		t.Fatalf("dependency failure should fail the load")
	}
}

func TestLibraryReload(t *testing.T) {
	broken := false
	dep := &countingDep{retained: map[SetID]int{}}
	lib := NewLibrary(LoaderFunc(func(id SetID) (*SetResource, error) {
		if broken {
			return nil, errors.New("corrupt file")
		}
		return heroLoader(id)
	}), dep)

	old, _ := lib.Load("hero")
	if err := lib.Reload("hero"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	fresh := lib.Get("hero")
	if fresh == old || lib.Version("hero") != 2 || lib.Refs("hero") != 1 {
		t.Fatalf("reload should swap the set and bump the version")
	}
	if dep.retained["hero"] != 1 {
		t.Fatalf("reload should hand dependencies over, got %d retains", dep.retained["hero"])
	}

	broken = true
	if err := lib.Reload("hero"); err == nil {
		t.Fatalf("expected reload error")
	}
	if lib.Get("hero") != fresh || lib.Version("hero") != 2 {
		t.Fatalf("failed reload must keep the previous set")
	}

	if err := lib.Reload("villain"); !errors.Is(err, ErrUnknownSet) {
		t.Fatalf("reloading an unloaded set should fail with ErrUnknownSet, got %v", err)
	}
}
