package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 100
)

// FileEvent reports the content of a tracked file after it changed on disk.
type FileEvent struct {
	Path    string // relative to the watcher root, slash separated
	Content string
	Removed bool
	Err     error
}

// FileWatcher watches tracked files using fsnotify. Changes are debounced per
// file and delivered on the Events channel.
type FileWatcher struct {
	root    string
	ignore  []string
	watcher *fsnotify.Watcher
	events  chan FileEvent

	mu       sync.Mutex
	closed   bool
	tracked  map[string]string      // absolute path -> relative path
	dirs     map[string]int         // watched directory -> tracked file count
	debounce map[string]*time.Timer // relative path -> pending timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFileWatcher creates a watcher for files under root. Paths matching any
// ignore pattern (doublestar syntax, relative to root) never produce events.
func NewFileWatcher(root string, ignore []string) (*FileWatcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw := &FileWatcher{
		root:     abs,
		ignore:   ignore,
		watcher:  watcher,
		events:   make(chan FileEvent, eventBufferSize),
		tracked:  make(map[string]string),
		dirs:     make(map[string]int),
		debounce: make(map[string]*time.Timer),
		ctx:      ctx,
		cancel:   cancel,
	}

	fw.wg.Add(1)
	go fw.run()

	return fw, nil
}

// Events returns the channel of file changes. It is closed by Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Ignored reports whether rel matches an ignore pattern.
func (fw *FileWatcher) Ignored(rel string) bool {
	for _, pattern := range fw.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (fw *FileWatcher) resolve(path string) (abs, rel string, err error) {
	abs = path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(fw.root, path)
	}
	abs = filepath.Clean(abs)

	rel, err = filepath.Rel(fw.root, abs)
	if err != nil {
		return "", "", err
	}
	return abs, filepath.ToSlash(rel), nil
}

// Track starts watching the given paths. Relative paths are resolved against
// the watcher root. Ignored paths are skipped.
func (fw *FileWatcher) Track(paths ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return errors.New("watcher closed")
	}

	var errs []error
	for _, p := range paths {
		abs, rel, err := fw.resolve(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if fw.Ignored(rel) {
			continue
		}
		if _, ok := fw.tracked[abs]; ok {
			continue
		}

		dir := filepath.Dir(abs)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				errs = append(errs, fmt.Errorf("watch %s: %w", dir, err))
				continue
			}
		}

		fw.dirs[dir]++
		fw.tracked[abs] = rel
	}

	return errors.Join(errs...)
}

// Untrack stops watching path.
func (fw *FileWatcher) Untrack(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	abs, rel, err := fw.resolve(path)
	if err != nil {
		return
	}
	if _, ok := fw.tracked[abs]; !ok {
		return
	}

	delete(fw.tracked, abs)
	if t, ok := fw.debounce[rel]; ok {
		t.Stop()
		delete(fw.debounce, rel)
	}

	dir := filepath.Dir(abs)
	fw.dirs[dir]--
	if fw.dirs[dir] <= 0 {
		delete(fw.dirs, dir)
		_ = fw.watcher.Remove(dir)
	}
}

// Close stops watching and closes the Events channel.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	for _, timer := range fw.debounce {
		timer.Stop()
	}
	fw.debounce = make(map[string]*time.Timer)
	fw.mu.Unlock()

	fw.cancel()
	err := fw.watcher.Close()
	fw.wg.Wait()
	close(fw.events)
	return err
}

// run processes filesystem events from fsnotify.
func (fw *FileWatcher) run() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// handleEvent debounces changes to tracked files.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	abs := filepath.Clean(event.Name)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return
	}
	rel, ok := fw.tracked[abs]
	if !ok {
		return
	}

	if timer, exists := fw.debounce[rel]; exists {
		timer.Stop()
	}
	fw.debounce[rel] = time.AfterFunc(debounceDelay, func() {
		fw.emit(abs, rel)
	})
}

// emit reads the file and delivers its content.
func (fw *FileWatcher) emit(abs, rel string) {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return
	}
	delete(fw.debounce, rel)
	fw.wg.Add(1)
	fw.mu.Unlock()
	defer fw.wg.Done()

	ev := FileEvent{Path: rel}
	data, err := os.ReadFile(abs)
	switch {
	case os.IsNotExist(err):
		ev.Removed = true
	case err != nil:
		ev.Err = fmt.Errorf("read %s: %w", rel, err)
	default:
		ev.Content = string(data)
	}

	select {
	case fw.events <- ev:
	case <-fw.ctx.Done():
	}
}
