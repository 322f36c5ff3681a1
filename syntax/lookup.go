package syntax

import (
	"sort"

	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/internal/token"
)

// ModuleLookup maps imported local names to their fully-qualified origin,
// e.g. "ls" -> "pynes.bitbag.load_sprite". It is built once per
// compilation unit while visiting import declarations.
type ModuleLookup struct {
	origins    map[string]string
	unresolved map[string]string // alias -> module as written
}

// NewModuleLookup returns an empty lookup.
func NewModuleLookup() *ModuleLookup {
	return &ModuleLookup{
		origins:    map[string]string{},
		unresolved: map[string]string{},
	}
}

// Record binds alias to the given origin.
func (m *ModuleLookup) Record(alias, origin string) {
	delete(m.unresolved, alias)
	m.origins[alias] = origin
}

// RecordUnresolved marks alias as imported from a module whose origin could
// not be resolved.
func (m *ModuleLookup) RecordUnresolved(alias, module string) {
	delete(m.origins, alias)
	m.unresolved[alias] = module
}

// Origin returns the fully-qualified origin of name, if it was imported.
func (m *ModuleLookup) Origin(name string) (string, bool) {
	origin, ok := m.origins[name]
	return origin, ok
}

// Resolve returns the origin of name. Names that were never imported
// resolve to "" without error; names imported from an unresolved module
// return an ImportResolutionError.
func (m *ModuleLookup) Resolve(name string, pos token.Position) (string, error) {
	if module, ok := m.unresolved[name]; ok {
		if module == "" {
			module = "<relative>"
		}
		return "", errors.Newf(errors.E2301, pos, "cannot resolve %q imported from %s", name, module)
	}
	return m.origins[name], nil
}

// Len returns the number of resolved imports.
func (m *ModuleLookup) Len() int {
	return len(m.origins)
}

// Aliases returns the resolved local names in sorted order.
func (m *ModuleLookup) Aliases() []string {
	names := make([]string, 0, len(m.origins))
	for name := range m.origins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NameTable records identifiers referenced by the compilation unit, for
// consumption by an external validator.
type NameTable struct {
	names map[string]struct{}
}

// NewNameTable returns an empty table.
func NewNameTable() *NameTable {
	return &NameTable{names: map[string]struct{}{}}
}

// Add marks name as used.
func (n *NameTable) Add(name string) {
	n.names[name] = struct{}{}
}

// Has returns true if name was marked as used.
func (n *NameTable) Has(name string) bool {
	_, ok := n.names[name]
	return ok
}

// Len returns the number of distinct names.
func (n *NameTable) Len() int {
	return len(n.names)
}

// Names returns the used names in sorted order.
func (n *NameTable) Names() []string {
	names := make([]string, 0, len(n.names))
	for name := range n.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
