package pool

// Pool is a generational slot map. Values are owned by the pool; handles
// are the only external reference and go stale once their slot is
// destroyed.
type Pool[T any] struct {
	values []*T
	gen    []generation
	alive  []bool
	free   []slotID
	count  int
}

func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{}
	p.Reserve(capacity)
	return p
}

// Reserve grows the backing storage to hold at least n slots.
func (p *Pool[T]) Reserve(n int) {
	if p == nil || n <= cap(p.values) {
		return
	}
	values := make([]*T, len(p.values), n)
	copy(values, p.values)
	p.values = values

	gen := make([]generation, len(p.gen), n)
	copy(gen, p.gen)
	p.gen = gen

	alive := make([]bool, len(p.alive), n)
	copy(alive, p.alive)
	p.alive = alive
}

// Create allocates a slot holding v and returns its handle. Freed slots are
// reused last-in first-out.
func (p *Pool[T]) Create(v T) (Handle, *T) {
	if p == nil {
		return InvalidHandle, nil
	}

	var id slotID
	if len(p.free) > 0 {
		id = p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
	} else {
		p.values = append(p.values, nil)
		p.gen = append(p.gen, 0)
		p.alive = append(p.alive, false)
		id = slotID(len(p.values))
	}

	idx := id - 1
	ptr := &v
	p.values[idx] = ptr
	p.alive[idx] = true
	p.count++
	return makeHandle(id, p.gen[idx]), ptr
}

// Destroy releases the slot behind h. Stale handles are ignored.
func (p *Pool[T]) Destroy(h Handle) bool {
	if !p.Alive(h) {
		return false
	}
	idx := h.id() - 1
	p.values[idx] = nil
	p.alive[idx] = false
	p.gen[idx]++
	p.free = append(p.free, h.id())
	p.count--
	return true
}

func (p *Pool[T]) Alive(h Handle) bool {
	if p == nil || !h.Valid() || int(h.id()) > len(p.gen) {
		return false
	}
	idx := h.id() - 1
	return p.alive[idx] && p.gen[idx] == h.generation()
}

// Get returns the value behind h, or nil for a stale handle.
func (p *Pool[T]) Get(h Handle) *T {
	if !p.Alive(h) {
		return nil
	}
	return p.values[h.id()-1]
}

// Each visits live slots in slot order. Slots appended during the walk are
// not visited; slots destroyed during the walk are skipped. Returning false
// stops the walk.
func (p *Pool[T]) Each(fn func(Handle, *T) bool) {
	if p == nil {
		return
	}
	n := len(p.values)
	for i := 0; i < n; i++ {
		if !p.alive[i] {
			continue
		}
		h := makeHandle(slotID(i+1), p.gen[i])
		if !fn(h, p.values[i]) {
			return
		}
	}
}

// Handles returns the handles of every live slot in slot order.
func (p *Pool[T]) Handles() []Handle {
	if p == nil {
		return nil
	}
	out := make([]Handle, 0, p.count)
	p.Each(func(h Handle, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}

func (p *Pool[T]) Len() int {
	if p == nil {
		return 0
	}
	return p.count
}

// Clear destroys every live slot.
func (p *Pool[T]) Clear() {
	if p == nil {
		return
	}
	for i := range p.values {
		if p.alive[i] {
			p.Destroy(makeHandle(slotID(i+1), p.gen[i]))
		}
	}
}
