package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/obj"
)

// DefaultDebounce is how long a file must stay quiet before it is reparsed.
// Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// Reload is the result of reparsing a changed mesh file. Exactly one of
// Mesh and Err is set.
type Reload struct {
	Path string
	Mesh *obj.Mesh
	Err  error
}

// Watcher reparses mesh files when they change on disk and delivers the
// results on a channel. The render thread drains Reloads and swaps in the
// new buffers.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]string // cleaned path -> path as configured
	reloads  chan Reload
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher watches the directories containing paths. Directories are
// watched instead of the files so atomic-rename saves are seen.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]string, len(paths)),
		reloads:  make(chan Reload, len(paths)+1),
		debounce: debounce,
		log:      logger.Named("watcher"),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		w.files[filepath.Clean(p)] = p
		dirs[filepath.Dir(filepath.Clean(p))] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Reloads returns the channel of reparsed meshes. It is closed when Run
// returns.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.reloads)
	defer w.fsw.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, watched := w.files[filepath.Clean(event.Name)]
			if !watched {
				continue
			}
			pending[path] = time.Now()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)
				if !w.reload(ctx, path) {
					return ctx.Err()
				}
			}
		}
	}
}

// reload parses path and delivers the result. It returns false if ctx was
// cancelled while waiting for the consumer.
func (w *Watcher) reload(ctx context.Context, path string) bool {
	m, err := obj.Load(path)
	r := Reload{Path: path, Mesh: m, Err: err}
	if err != nil {
		w.log.Warn("mesh reload failed, keeping previous geometry",
			zap.String("path", path), zap.Error(err))
		r.Mesh = nil
	} else {
		w.log.Info("mesh reloaded", zap.String("path", path), zap.Int("vertices", m.VertexCount))
	}

	select {
	case w.reloads <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
