// Package domain contains the core rule-application pipeline and logic.
package domain

import (
	"fmt"
	"go/ast"
	"sort"

	m "refract.dev/pkg/refract/internal/model"
)

// Transformation mutates a working syntax tree. Implementations may
// replace, remove, or reorder any subset of nodes and must return the
// tree representing the post-transformation structure. They must not
// touch anything outside the tree they are handed.
type Transformation interface {
	Apply(file *ast.File) (*ast.File, error)
}

// Registry maps stable rule identifiers to their Transformation
// implementations. It is built once during wiring, frozen, and then
// read-only for the rest of the run.
type Registry struct {
	byName map[string]Transformation
	order  []string
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Transformation)}
}

// Register adds a transformation under the given identifier.
// Registration order is preserved for Names.
func (r *Registry) Register(name string, t Transformation) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen; cannot register %q", name)
	}

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("transformation %q already registered", name)
	}

	r.byName[name] = t
	r.order = append(r.order, name)

	return nil
}

// Freeze marks the registry read-only. Resolution works before and
// after freezing; registration only before.
func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

// Resolve looks up the transformation for an identifier. Unknown
// identifiers fail closed with a TransformError.
func (r *Registry) Resolve(name string) (Transformation, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, &m.TransformError{Rule: name, Err: fmt.Errorf("unknown transformation %q (known: %v)", name, r.known())}
	}

	return t, nil
}

// Names returns the registered identifiers in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

func (r *Registry) known() []string {
	names := r.Names()
	sort.Strings(names)

	return names
}
