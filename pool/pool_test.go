package pool

import "testing"

type item struct {
	name string
}

func TestPoolLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := New[item](0)
			handles := make([]Handle, 0, c.create)
			for i := 0; i < c.create; i++ {
				h, _ := p.Create(item{name: "x"})
				if !h.Valid() {
					t.Fatalf("Create returned an invalid handle")
				}
				handles = append(handles, h)
			}
			if p.Len() != c.create {
				t.Fatalf("expected %d live slots, got %d", c.create, p.Len())
			}
			if c.destroyIndex >= 0 {
				h := handles[c.destroyIndex]
				if !p.Destroy(h) {
					t.Fatalf("Destroy should return true for a live handle")
				}
				if p.Alive(h) || p.Get(h) != nil {
					t.Fatalf("handle should be stale after destruction")
				}
				if p.Destroy(h) {
					t.Fatalf("double destroy should be ignored")
				}
				if p.Len() != c.create-1 {
					t.Fatalf("expected %d live slots, got %d", c.create-1, p.Len())
				}
			}
		})
	}
}

func TestPoolReuseBumpsGeneration(t *testing.T) {
	p := New[item](4)
	old, _ := p.Create(item{name: "old"})
	p.Destroy(old)

	fresh, v := p.Create(item{name: "fresh"})
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got ids %d and %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if p.Get(old) != nil {
		t.Fatalf("stale handle resolved to %+v", p.Get(old))
	}
	if got := p.Get(fresh); got != v || got.name != "fresh" {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestPoolEachOrderAndMutation(t *testing.T) {
	p := New[item](0)
	a, _ := p.Create(item{name: "a"})
	b, _ := p.Create(item{name: "b"})
	p.Create(item{name: "c"})

	var seen []string
	p.Each(func(h Handle, v *item) bool {
		seen = append(seen, v.name)
		if h == a {
			p.Destroy(b)
			p.Create(item{name: "d"})
		}
		return true
	})

	// d reuses the slot b freed, so the walk reaches it in b's place.
	if len(seen) != 3 || seen[0] != "a" || seen[1] != "d" || seen[2] != "c" {
		t.Fatalf("unexpected walk %v", seen)
	}
}

func TestInvalidHandle(t *testing.T) {
	var p *Pool[item]
	if p.Alive(InvalidHandle) || p.Get(1) != nil || p.Len() != 0 {
		t.Fatalf("nil pool should report nothing")
	}

	q := New[item](0)
	if q.Alive(InvalidHandle) || q.Alive(Handle(42)) {
		t.Fatalf("unknown handles must not be alive")
	}
}

func TestPoolClear(t *testing.T) {
	p := New[item](0)
	h, _ := p.Create(item{})
	p.Create(item{})
	p.Clear()
	if p.Len() != 0 || p.Alive(h) {
		t.Fatalf("clear should destroy every slot")
	}
}
