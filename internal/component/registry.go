// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each HTTP component lives under components/<name> and calls
// component.Register() in an init() function.  main.go imports the
// packages for their side effect, then calls Mount once, which hands every
// component its Env and mounts its Routes() under "/<name>".
//
// Notes
// -----
//   - Components mount in name order so route conflicts surface the same
//     way on every boot.
//   - Oxford commas, two spaces after periods.

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/sitekit/internal/config"
	"github.com/yanizio/sitekit/internal/preset"
	"github.com/yanizio/sitekit/internal/preview"
)

// Env is the process-wide state components share.  The tenant itself is
// per request and comes from tenant.FromContext.
type Env struct {
	Config  *config.Config
	Hub     *preview.Hub
	Presets *preset.Catalog
}

// Initializer is optional.  Mount calls Init(env) before Routes().
type Initializer interface {
	Init(Env) error
}

// Component contract.
//
// Migrations() returns the DDL the component's tables need, or nil.
// Routes() returns paths relative to "/<Name()>", e.g.:
//
//	r := chi.NewRouter()
//	r.Get("/pages", listPages) // served at /editor/pages
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
	Migrations() []string
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every component and mounts its routes on r.
func Mount(r chi.Router, env Env) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(env); err != nil {
				return fmt.Errorf("component %s: %w", c.Name(), err)
			}
		}
		r.Mount("/"+c.Name(), c.Routes())
	}
	return nil
}

// Migrations concatenates the DDL of every component, in mount order.
func Migrations() []string {
	var out []string
	for _, c := range All() {
		out = append(out, c.Migrations()...)
	}
	return out
}
