package animset

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/animfold/anim"
)

type ChangeKind uint8

const (
	ChangeSet ChangeKind = iota
	ChangeScript
)

// Change is one debounced edit to a watched set or script file.
type Change struct {
	Path string
	Kind ChangeKind
}

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch {
	case isSpecFile(path):
		return ChangeSet, true
	case isScriptFile(path):
		return ChangeScript, true
	default:
		return 0, false
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

// Reloaded lists what DrainReloads picked up in one call.
type Reloaded struct {
	Sets    []anim.SetID
	Scripts []string
}

// DrainReloads applies every pending change without blocking. Loaded sets
// are reloaded in lib and the animators playing them are refreshed. Sets
// that fail to reload keep their previous version. Script changes are
// returned for the caller to recompile.
func DrainReloads(w *Watcher, lib *anim.Library, eng *anim.Engine) Reloaded {
	var out Reloaded
	if w == nil {
		return out
	}
	for {
		select {
		case ch, ok := <-w.Events:
			if !ok {
				return out
			}
			switch ch.Kind {
			case ChangeSet:
				id := SetIDForPath(ch.Path)
				if lib == nil || !lib.Has(id) {
					continue
				}
				if err := lib.Reload(id); err != nil {
					anim.Logger().Warn("animset: reload failed", "path", ch.Path, "err", err)
					continue
				}
				if eng != nil {
					eng.Refresh(id)
				}
				out.Sets = append(out.Sets, id)
			case ChangeScript:
				out.Scripts = append(out.Scripts, scriptName(ch.Path))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return out
			}
			anim.Logger().Warn("animset: watch error", "err", err)
		default:
			return out
		}
	}
}

func scriptName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
