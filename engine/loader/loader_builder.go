package loader

import (
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the number of goroutines serving LoadAsync.
//
// Parameters:
//   - n: worker count (values below 1 are raised to 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithPipelineKey sets the pipeline used by the materials of loaded models.
//
// Parameters:
//   - key: a registered pipeline key
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pipeline option to a loader
func WithPipelineKey(key string) LoaderBuilderOption {
	return func(l *loader) {
		l.pipelineKey = key
	}
}

// WithModel pre-populates the model cache.
//
// Parameters:
//   - key: the cache key (normally the file path)
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}
