// Package tools holds the model-callable tool implementations and their
// registry. All built-in tools drive the desktop daemon.
package tools

import "github.com/Axle-Bucamp/bytebot/internal/schema"

// Registry holds a set of named tools and exposes their catalog.
type Registry struct {
	tools map[string]schema.Tool
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]schema.Tool)}
}

// Register adds a tool. Re-registering a name replaces the previous tool
// without changing its catalog position.
func (r *Registry) Register(t schema.Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Specs returns the tool catalog in registration order.
func (r *Registry) Specs() []schema.ToolSpec {
	specs := make([]schema.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, schema.SpecOf(r.tools[name]))
	}
	return specs
}
