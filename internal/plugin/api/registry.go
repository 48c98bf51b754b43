package api

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// AggregateModule is the name of the module that collects all injected modules.
const AggregateModule = "ropeview"

// APIVersion is the version of the binding surface.
const APIVersion = 1

// ErrModuleExists is returned when registering a module name twice.
var ErrModuleExists = errors.New("module already registered")

// ErrModuleNotFound is returned when injecting an unknown module.
var ErrModuleNotFound = errors.New("module not found")

// Module represents a Lua API module that can be registered with a Registry.
type Module interface {
	// Name returns the module name (e.g., "text").
	Name() string

	// Loader builds the module table. It runs once per Lua state, the
	// first time the module is required or the aggregate is built.
	Loader(L *lua.LState) *lua.LTable
}

// Registry manages API modules and their injection into Lua states.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrModuleExists, mod.Name())
	}

	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll preloads every registered module and the aggregate module into
// the Lua state.
func (r *Registry) InjectAll(L *lua.LState) error {
	return r.Inject(L, r.List()...)
}

// Inject preloads the named modules and an aggregate module holding them.
func (r *Registry) Inject(L *lua.LState, moduleNames ...string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mods := make([]Module, 0, len(moduleNames))
	for _, name := range moduleNames {
		mod, ok := r.modules[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrModuleNotFound, name)
		}
		mods = append(mods, mod)
	}

	// Each module table is built once per state and shared between
	// require(name) and the aggregate.
	tables := make(map[string]*lua.LTable, len(mods))
	load := func(L *lua.LState, mod Module) *lua.LTable {
		if t, ok := tables[mod.Name()]; ok {
			return t
		}
		t := mod.Loader(L)
		tables[mod.Name()] = t
		return t
	}

	for _, mod := range mods {
		L.PreloadModule(mod.Name(), func(L *lua.LState) int {
			L.Push(load(L, mod))
			return 1
		})
	}

	L.PreloadModule(AggregateModule, func(L *lua.LState) int {
		agg := L.NewTable()
		for _, mod := range mods {
			L.SetField(agg, mod.Name(), load(L, mod))
		}
		L.SetField(agg, "api_version", lua.LNumber(APIVersion))
		L.Push(agg)
		return 1
	})

	return nil
}

// DefaultRegistry creates a registry with all standard modules registered.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewTextModule(),
		NewUtilModule(),
	}

	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}

	return r, nil
}
