// Package configwatch watches a YAML configuration file using fsnotify and
// re-parses it whenever it is written or created, handing each parsed
// FileConfig to a callback. Applying the new values is up to the callback;
// an already constructed TelemetryClient keeps its original configuration.
package configwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fsnotify/fsnotify"
)

// FileConfig is the YAML-serializable subset of appinsights.Config that the
// demo CLI allows operators to edit on disk.
type FileConfig struct {
	InstrumentationKey string        `yaml:"instrumentationKey"`
	EndpointURL        string        `yaml:"endpointURL"`
	SubmissionInterval time.Duration `yaml:"submissionInterval"`
	MaxBufferSize      int           `yaml:"maxBufferSize"`
}

// Load reads and parses a FileConfig from path.
func Load(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("configwatch: read %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("configwatch: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Watcher watches a single YAML config file and invokes a callback with the
// freshly parsed FileConfig whenever its content changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	running bool
}

// New creates a Watcher for path. The file need not exist yet; Start will
// still watch its containing directory so it can pick up a later create.
func New(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("configwatch: new watcher: %w", err)
	}
	return &Watcher{path: path, watcher: w}, nil
}

// Start begins watching in the background, calling onChange with each
// successfully parsed reload. Parse errors are passed to onError instead and
// do not stop the watch loop. Start returns once the watch is registered;
// the returned goroutine runs until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context, onChange func(FileConfig), onError func(error)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("configwatch: already running")
	}
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("configwatch: watch dir %s: %w", dir, err)
	}
	w.running = true
	w.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(w.path)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				if onChange != nil {
					onChange(cfg)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	return w.watcher.Close()
}
