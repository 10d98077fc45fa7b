// Package registry provides a registry of pulse emitter backends.
// Backends register themselves in init() functions, allowing the CLI to pick
// one by name (--emitter) without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/michaelssim/soundbuddy/internal/pulse"
)

// Env carries what a backend may need to build its emitter.
type Env struct {
	Tone pulse.Tone
	Out  io.Writer // Terminal or SSH session, for bell-style backends
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory builds an emitter for the given environment.
type Factory func(env Env) (pulse.Emitter, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a backend factory to the registry.
// Panics if a backend with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: emitter %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for name := range factories {
		result = append(result, BackendInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create builds an emitter by backend name.
// Returns an error if the name is not registered or the backend fails.
func Create(name string, env Env) (pulse.Emitter, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown emitter %q", name)
	}

	e, err := f(env)
	if err != nil {
		return nil, fmt.Errorf("registry: emitter %q: %w", name, err)
	}
	return e, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
