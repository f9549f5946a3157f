package anim

// On registers fn for keyframe events of the animator. Without options it
// receives every event.
func (e *Engine) On(h Handle, fn ListenerFunc, opts ...ListenerOption) ListenerID {
	return e.on(h, fn, false, opts)
}

// Once registers fn for the next matching event only.
func (e *Engine) Once(h Handle, fn ListenerFunc, opts ...ListenerOption) ListenerID {
	return e.on(h, fn, true, opts)
}

func (e *Engine) on(h Handle, fn ListenerFunc, once bool, opts []ListenerOption) ListenerID {
	if !assert(fn != nil, "anim: nil listener function") {
		return InvalidListenerID
	}
	a := e.animator(h)
	if a == nil {
		return InvalidListenerID
	}

	l := Listener{
		ID:     a.listenerIDCounter,
		Tag:    InvalidTag,
		KeyTag: InvalidKeyTag,
		Fn:     fn,
		Once:   once,
	}
	a.listenerIDCounter++
	for _, opt := range opts {
		opt(&l)
	}
	a.listeners = append(a.listeners, l)
	return l.ID
}

// Off removes a listener. It is safe to call from inside a listener,
// including on the listener being dispatched.
func (e *Engine) Off(h Handle, id ListenerID) bool {
	if !assert(id != InvalidListenerID, "anim: off with an invalid listener id") {
		return false
	}
	a := e.animator(h)
	if a == nil {
		return false
	}
	return a.removeListener(id)
}

// Listeners returns the number of listeners on the animator.
func (e *Engine) Listeners(h Handle) int {
	if a := e.animators.Get(h); a != nil {
		return len(a.listeners)
	}
	return 0
}

func (a *animator) listenerIndex(id ListenerID) int {
	for i := range a.listeners {
		if a.listeners[i].ID == id {
			return i
		}
	}
	return -1
}

// removeListener swaps the last listener into the freed slot.
func (a *animator) removeListener(id ListenerID) bool {
	i := a.listenerIndex(id)
	if i < 0 {
		return false
	}
	last := len(a.listeners) - 1
	a.listeners[i] = a.listeners[last]
	a.listeners[last] = Listener{}
	a.listeners = a.listeners[:last]
	return true
}

// fire dispatches one event. The matching listener ids are captured first
// and each is looked up again before it runs: listeners removed by an
// earlier callback are skipped and listeners added during the dispatch wait
// for the next event.
func (e *Engine) fire(a *animator, tag Tag, key KeyFrame, count int) {
	if len(a.listeners) == 0 {
		return
	}

	ev := Event{Animator: a.handle, Tag: tag, Key: key, Count: count}

	ids := make([]ListenerID, 0, len(a.listeners))
	for i := range a.listeners {
		l := &a.listeners[i]
		if l.Fn != nil && l.matches(tag, key.KeyTag) {
			ids = append(ids, l.ID)
		}
	}

	for _, id := range ids {
		i := a.listenerIndex(id)
		if i < 0 {
			continue
		}
		l := a.listeners[i]
		l.Fn(ev)

		if e.animators.Get(ev.Animator) != a {
			return
		}
		if l.Once {
			a.removeListener(id)
		}
	}
}
