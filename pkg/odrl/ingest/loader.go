package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
)

// Loader reads ODRL policy documents from the filesystem and optionally
// watches a directory for changes, reloading and re-decoding affected
// documents. It mirrors the teacher's policy.Loader shape (load-from-path,
// cache, fsnotify watch with debounce) with Rego/bundle handling replaced
// by the single ODRL JSON document format.
type Loader struct {
	logger  zerolog.Logger
	mu      sync.RWMutex
	cache   map[string]*policy.Policy
	watcher *fsnotify.Watcher
}

// NewLoader constructs a Loader with a component-scoped child logger.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "ingest-loader").Logger(),
		cache:  make(map[string]*policy.Policy),
	}
}

// LoadFromPaths decodes every ODRL policy document reachable from paths,
// recursing into directories.
func (l *Loader) LoadFromPaths(paths []string) ([]*policy.Policy, error) {
	var all []*policy.Policy
	for _, p := range paths {
		policies, err := l.loadFromPath(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load from path %s: %w", p, err)
		}
		all = append(all, policies...)
	}
	l.logger.Info().Int("total", len(all)).Int("sources", len(paths)).Msg("policies loaded from paths")
	return all, nil
}

func (l *Loader) loadFromPath(path string) ([]*policy.Policy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if info.IsDir() {
		return l.loadFromDirectory(path)
	}
	p, err := l.loadFromFile(path)
	if err != nil {
		return nil, err
	}
	return []*policy.Policy{p}, nil
}

func (l *Loader) loadFromDirectory(dirPath string) ([]*policy.Policy, error) {
	var policies []*policy.Policy
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		p, err := l.loadFromFile(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("failed to load policy file")
			return nil
		}
		policies = append(policies, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return policies, nil
}

func (l *Loader) loadFromFile(filePath string) (*policy.Policy, error) {
	l.mu.RLock()
	if cached, ok := l.cache[filePath]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode policy %s: %w", filePath, err)
	}

	l.mu.Lock()
	l.cache[filePath] = p
	l.mu.Unlock()

	l.logger.Debug().Str("path", filePath).Str("policy", p.UID).Msg("policy loaded from file")
	return p, nil
}

// Watch watches paths for policy document changes and invokes reloadFn with
// the freshly reloaded set after a short debounce, the same pattern as the
// teacher's policy.Loader.Watch.
func (l *Loader) Watch(ctx context.Context, paths []string, reloadFn func([]*policy.Policy) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	l.watcher = watcher

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("failed to stat path for watching")
			continue
		}
		if info.IsDir() {
			if err := l.watchDirectory(path); err != nil {
				l.logger.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
			}
		} else if err := watcher.Add(path); err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("failed to watch file")
		}
	}

	go l.processEvents(ctx, paths, reloadFn)
	l.logger.Info().Int("paths", len(paths)).Msg("started watching policy paths")
	return nil
}

func (l *Loader) watchDirectory(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return l.watcher.Add(path)
		}
		return nil
	})
}

func (l *Loader) processEvents(ctx context.Context, paths []string, reloadFn func([]*policy.Policy) error) {
	var reloadTimer *time.Timer
	const reloadDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			if l.watcher != nil {
				_ = l.watcher.Close()
			}
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && strings.HasSuffix(event.Name, ".json") {
				l.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("policy file changed")
				l.mu.Lock()
				delete(l.cache, event.Name)
				l.mu.Unlock()

				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(reloadDelay, func() {
					if err := l.triggerReload(paths, reloadFn); err != nil {
						l.logger.Error().Err(err).Msg("failed to reload policies")
					}
				})
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (l *Loader) triggerReload(paths []string, reloadFn func([]*policy.Policy) error) error {
	l.logger.Info().Msg("reloading policies")
	policies, err := l.LoadFromPaths(paths)
	if err != nil {
		return fmt.Errorf("failed to reload policies: %w", err)
	}
	if err := reloadFn(policies); err != nil {
		return fmt.Errorf("failed to apply reloaded policies: %w", err)
	}
	l.logger.Info().Int("count", len(policies)).Msg("policies reloaded")
	return nil
}

// StopWatching closes the underlying fsnotify watcher, if one is active.
func (l *Loader) StopWatching() error {
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}

// ClearCache discards every cached decoded policy.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*policy.Policy)
	l.logger.Debug().Msg("policy cache cleared")
}
