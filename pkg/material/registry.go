package material

import (
	"fmt"
	"sync"
)

// Registry tracks component descriptors keyed by type identifier. Descriptors
// are registered at process start; afterwards the registry is effectively
// read-only. Re-registering a type replaces the previous entry (last
// registration wins).
type Registry struct {
	mu          sync.RWMutex
	descriptors map[Type]Descriptor
	order       []Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[Type]Descriptor),
	}
}

// Register associates a descriptor with its type identifier.
func (r *Registry) Register(desc Descriptor) error {
	if desc.Type == "" {
		return fmt.Errorf("material: descriptor type is required")
	}
	if desc.Render == nil {
		return fmt.Errorf("material: renderer for %q is nil", desc.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[desc.Type]; !exists {
		r.order = append(r.order, desc.Type)
	}
	desc.DefaultProps = desc.DefaultProps.Clone()
	r.descriptors[desc.Type] = desc
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Lookup fetches a descriptor by type identifier. Callers must treat a false
// return as "render nothing for this instance", never as a fatal condition.
func (r *Registry) Lookup(t Type) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[t]
	if !ok {
		return Descriptor{}, false
	}
	desc.DefaultProps = desc.DefaultProps.Clone()
	return desc, true
}

// Title returns the display title for a type, or the raw identifier when the
// type is not registered. Used for statistics column headers.
func (r *Registry) Title(t Type) string {
	if desc, ok := r.Lookup(t); ok && desc.Title != "" {
		return desc.Title
	}
	return string(t)
}

// Interactive reports whether a type collects answers. Unregistered types are
// never interactive.
func (r *Registry) Interactive(t Type) bool {
	desc, ok := r.Lookup(t)
	return ok && desc.Interactive
}

// KindOf returns the value-shape classification for a type. Unregistered
// types report ValueScalar.
func (r *Registry) KindOf(t Type) ValueKind {
	desc, ok := r.Lookup(t)
	if !ok {
		return ValueScalar
	}
	return desc.Kind
}

// Types returns the registered type identifiers in registration order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Type(nil), r.order...)
}

// Palette returns descriptors grouped for the design-time component palette,
// preserving registration order within each group.
func (r *Registry) Palette() map[Group][]Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[Group][]Descriptor)
	for _, t := range r.order {
		desc := r.descriptors[t]
		desc.DefaultProps = desc.DefaultProps.Clone()
		out[desc.Group] = append(out[desc.Group], desc)
	}
	return out
}
