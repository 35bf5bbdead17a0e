package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Store owns the current content snapshot. Readers get an immutable
// *Document; a reload swaps in a freshly parsed one.
type Store struct {
	path string
	log  *zap.Logger
	doc  atomic.Pointer[Document]
}

// Open loads path (or the bundled document when path is empty).
func Open(path string, log *zap.Logger) (*Store, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, log: log}
	s.doc.Store(doc)
	return s, nil
}

// NewStore wraps an already loaded document. Watch is a no-op for it.
func NewStore(doc *Document) *Store {
	s := &Store{log: zap.NewNop()}
	s.doc.Store(doc)
	return s
}

func (s *Store) Document() *Document {
	return s.doc.Load()
}

// Reload re-reads the content file. On failure the previous snapshot stays.
func (s *Store) Reload() error {
	doc, err := Load(s.path)
	if err != nil {
		return err
	}
	s.doc.Store(doc)
	return nil
}

// Watch reloads the document whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}
	target := filepath.Clean(s.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					s.log.Error("content reload failed, keeping previous content", zap.Error(err))
					return
				}
				s.log.Info("content reloaded", zap.String("path", s.path))
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("content watcher error", zap.Error(err))
		}
	}
}
