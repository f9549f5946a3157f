// Package script runs tengo listeners for animation events.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/animfold/anim"
	"github.com/milk9111/animfold/animset"
)

const eventDispatchScript = `
if __phase == "event" {
	on_event(__host, __state, __event)
}
`

// Namer turns numeric tags into the names scripts compare against.
// *animset.SetSpec implements it.
type Namer interface {
	TagName(anim.Tag) string
	KeyTagName(anim.KeyTag) string
}

// Command is something a script asked the host to do.
type Command struct {
	Name     string
	Animator anim.Handle
	Args     []any
}

// Listener is a compiled script that receives animation events through its
// on_event(host, state, ev) function. State persists between events.
type Listener struct {
	name     string
	names    Namer
	compiled *tengo.Compiled
	state    *tengo.Map
	pending  []Command
	current  anim.Handle
}

// Load compiles the named script from animset storage.
func Load(name string, names Namer) (*Listener, error) {
	src, err := animset.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, names)
}

func Compile(name string, src []byte, names Namer) (*Listener, error) {
	full := string(src) + "\n" + eventDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__host", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__event", map[string]any{})

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &Listener{
		name:     name,
		names:    names,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (l *Listener) Name() string { return l.name }

// Handle runs on_event for one event.
func (l *Listener) Handle(ev anim.Event) error {
	if l == nil || l.compiled == nil {
		return fmt.Errorf("script: nil listener")
	}
	l.current = ev.Animator
	if err := l.compiled.Set("__phase", "event"); err != nil {
		return err
	}
	if err := l.compiled.Set("__host", l.host()); err != nil {
		return err
	}
	if err := l.compiled.Set("__state", l.state); err != nil {
		return err
	}
	if err := l.compiled.Set("__event", l.event(ev)); err != nil {
		return err
	}
	if err := l.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s on_event: %w", l.name, err)
	}
	return nil
}

// Func adapts the listener for anim.Engine.On. Script errors are logged.
func (l *Listener) Func() anim.ListenerFunc {
	return func(ev anim.Event) {
		if err := l.Handle(ev); err != nil {
			anim.Logger().Error("script: event handler failed", "script", l.name, "err", err)
		}
	}
}

// Drain returns and clears the commands queued since the last call.
func (l *Listener) Drain() []Command {
	out := l.pending
	l.pending = nil
	return out
}

// State returns a script state value converted to Go.
func (l *Listener) State(key string) any {
	return objectToAny(l.state.Value[key])
}

func (l *Listener) tagName(t anim.Tag) string {
	if l.names != nil {
		return l.names.TagName(t)
	}
	return strconv.FormatUint(uint64(t), 10)
}

func (l *Listener) keyTagName(k anim.KeyTag) string {
	if l.names != nil {
		return l.names.KeyTagName(k)
	}
	if k == anim.KeyTagEnd {
		return "end"
	}
	return strconv.FormatUint(uint64(k), 10)
}

func (l *Listener) event(ev anim.Event) *tengo.ImmutableMap {
	ints := make([]tengo.Object, anim.MaxParams)
	floats := make([]tengo.Object, anim.MaxParams)
	bools := make([]tengo.Object, anim.MaxParams)
	for i, p := range ev.Key.Params {
		ints[i] = &tengo.Int{Value: p.Int()}
		floats[i] = &tengo.Float{Value: p.Float()}
		if p.Bool() {
			bools[i] = tengo.TrueValue
		} else {
			bools[i] = tengo.FalseValue
		}
	}

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"animator": &tengo.String{Value: ev.Animator.String()},
		"tag":      &tengo.String{Value: l.tagName(ev.Tag)},
		"key":      &tengo.String{Value: l.keyTagName(ev.Key.KeyTag)},
		"frame":    &tengo.Int{Value: int64(ev.Key.Frame)},
		"count":    &tengo.Int{Value: int64(ev.Count)},
		"ints":     &tengo.ImmutableArray{Value: ints},
		"floats":   &tengo.ImmutableArray{Value: floats},
		"bools":    &tengo.ImmutableArray{Value: bools},
	}}
}

func (l *Listener) host() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		l.queue(name, args[1:])
		return tengo.TrueValue, nil
	}}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return tengo.FalseValue, nil
		}
		l.queue("play", args)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		anim.Logger().Info("script: "+strings.Join(parts, " "), "script", l.name, "animator", l.current)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (l *Listener) queue(name string, args []tengo.Object) {
	cmd := Command{Name: name, Animator: l.current}
	for _, a := range args {
		cmd.Args = append(cmd.Args, objectToAny(a))
	}
	l.pending = append(l.pending, cmd)
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
