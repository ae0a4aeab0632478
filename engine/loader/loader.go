// Package loader imports glTF 2.0 models into CPU-side model data, synchronously or on a
// worker pool. GPU upload happens later, when a scene first adds an object using the model.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// ErrUnsupportedFormat is returned for file extensions no backend handles.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	backend     loaderBackend
	pipelineKey string

	modelCache map[string]model.Model
	inflight   map[string]*Future

	workers  int
	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
	taskID   int
}

// Loader imports model files and caches the results by path.
type Loader interface {
	// Load imports a model file, or returns the cached model for path.
	//
	// Parameters:
	//   - path: a .glb or .gltf file
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if the format is unsupported or import fails
	Load(path string) (model.Model, error)

	// LoadAsync starts Load on the worker pool and returns its Future. Concurrent calls for
	// the same path share one Future; a cached path resolves immediately.
	//
	// Parameters:
	//   - path: a .glb or .gltf file
	//
	// Returns:
	//   - *Future: resolves with the model or the import error
	LoadAsync(path string) *Future

	// LoadReader imports a model from r and caches it under name.
	//
	// Parameters:
	//   - name: the cache key and fallback model name
	//   - r: glTF JSON or GLB bytes
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if import fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Get retrieves a cached model by key. Returns nil if not found.
	Get(key string) model.Model

	// Models returns a copy of the model cache.
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the given backend and options.
//
// Parameters:
//   - backendType: the loader backend (BackendTypeGLTF)
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		pipelineKey: renderer.PipelineLit,
		modelCache:  make(map[string]model.Model),
		inflight:    make(map[string]*Future),
		workers:     max(runtime.NumCPU()/2, 1),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFImporter()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	if err := checkFormat(path); err != nil {
		return nil, err
	}

	start := time.Now()
	imported, err := l.backend.Import(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	m := model.FromImported(imported, l.pipelineKey)
	log.Printf("[Loader] loaded %s: %d meshes, %d clips in %s", path, len(imported.Meshes), len(imported.Animations), time.Since(start).Round(time.Millisecond))

	return l.store(path, m), nil
}

func (l *loader) LoadAsync(path string) *Future {
	l.mu.Lock()
	if m, ok := l.modelCache[path]; ok {
		l.mu.Unlock()
		return resolvedFuture(path, Result{Model: m})
	}
	if f, ok := l.inflight[path]; ok {
		l.mu.Unlock()
		return f
	}
	f := newFuture(path)
	l.inflight[path] = f
	id := l.taskID
	l.taskID++
	l.mu.Unlock()

	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	})

	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (res any, err error) {
			var r Result
			defer func() {
				if p := recover(); p != nil {
					r = Result{Err: fmt.Errorf("failed to load %s: %v", path, p)}
				}
				l.mu.Lock()
				delete(l.inflight, path)
				l.mu.Unlock()
				f.resolve(r)
				res, err = r.Model, r.Err
			}()
			r.Model, r.Err = l.Load(path)
			return
		},
	})
	return f
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	if m := l.Get(name); m != nil {
		return m, nil
	}

	imported, err := l.backend.ImportReader(r, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, model.FromImported(imported, l.pipelineKey)), nil
}

func (l *loader) Get(key string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[key]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// store caches m under key unless another load got there first, returning the cached model.
func (l *loader) store(key string, m model.Model) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.modelCache[key]; ok {
		return existing
	}
	l.modelCache[key] = m
	return m
}

func checkFormat(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
