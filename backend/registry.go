package backend

import (
	"errors"
	"sort"
	"sync"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	// Vulkan > HAL > Rust (direct loader first, wgpu-native last).
	backendPriority = []string{BackendVulkan, BackendHAL, BackendRust}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() Backend {
	for _, factory := range ordered() {
		if b := factory(); b != nil {
			return b
		}
	}
	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() Backend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes the best backend whose library loads.
// Backends that fail Init are skipped; if none succeeds the returned
// error joins every failure with ErrBackendNotAvailable.
func InitDefault() (Backend, error) {
	errs := []error{ErrBackendNotAvailable}
	for _, factory := range ordered() {
		b := factory()
		if b == nil {
			continue
		}
		if err := b.Init(); err != nil {
			errs = append(errs, err)
			continue
		}
		return b, nil
	}
	return nil, errors.Join(errs...)
}

// ordered returns the registered factories, priority backends first and
// the rest in name order.
func ordered() []BackendFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool, len(backendPriority))
	factories := make([]BackendFactory, 0, len(backends))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			factories = append(factories, factory)
			seen[name] = true
		}
	}

	rest := make([]string, 0, len(backends))
	for name := range backends {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		factories = append(factories, backends[name])
	}
	return factories
}
