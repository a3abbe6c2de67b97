// Package registry provides command, variable and type-set registration and
// lookup for conshell. It manages the catalog of global commands/variables,
// the set of named type sets, and the directory of live instances registered
// against those types. All name lookups are case-insensitive exact matches;
// fuzzy matching belongs to tab-completion, not the registry.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"conshell/pkg/contypes"
)

// Registry manages registration and lookup for conshell commands, variables
// and type sets. It provides thread-safe registration and retrieval so
// application goroutines can register instances while the parser performs
// concurrent lookups.
//
// Registries are explicitly constructed and passed by reference; there is no
// package-level singleton, so tests can run independent registries side by
// side.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]*CommandSet
	variables map[string]*Variable
	typeSets  map[string]*TypeSet
	table     *instanceTable
	ready     bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands:  make(map[string]*CommandSet),
		variables: make(map[string]*Variable),
		typeSets:  make(map[string]*TypeSet),
		table:     newInstanceTable(),
	}
}

// MarkReady flags the registry as having completed provider discovery.
// Instance registration arriving before this point is rejected with
// ErrNotReady instead of crashing startup.
func (r *Registry) MarkReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = true
}

// Ready reports whether provider discovery has completed.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// RegisterCommand appends an overload to the named global command set,
// creating the set on first registration. Overload order is preserved and
// decides tie-breaks at dispatch time.
func (r *Registry) RegisterCommand(name string, ov contypes.Overload) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if ov.Handler == nil {
		return fmt.Errorf("command %s requires a handler", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	set, ok := r.commands[key]
	if !ok {
		set = &CommandSet{Name: name}
		r.commands[key] = set
	}
	set.Overloads = append(set.Overloads, ov)
	return nil
}

// RegisterVariable adds a global variable. A nil Setter makes the variable
// read-only.
func (r *Registry) RegisterVariable(name string, spec contypes.VariableSpec) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if spec.Getter == nil {
		return fmt.Errorf("variable %s requires a getter", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.variables[key]; exists {
		return fmt.Errorf("variable %s: %w", name, contypes.ErrDuplicateName)
	}
	r.variables[key] = &Variable{Name: name, Spec: spec}
	return nil
}

// RegisterTypeSet creates a named type set. Registering a name twice
// returns the existing set so providers discovered in any order share it.
func (r *Registry) RegisterTypeSet(name string) (*TypeSet, error) {
	if name == "" {
		return nil, fmt.Errorf("type set name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if ts, exists := r.typeSets[key]; exists {
		return ts, nil
	}
	ts := newTypeSet(name, r.table)
	r.typeSets[key] = ts
	return ts, nil
}

// AddInstance registers a live target under a type set. A default instance
// replaces any previous default (last registration wins); a named instance
// must be unique within its type set. Registration before MarkReady is a
// no-op returning ErrNotReady.
func (r *Registry) AddInstance(typeSetName, instanceName string, target any, isDefault bool) (*Instance, error) {
	if !r.Ready() {
		return nil, contypes.ErrNotReady
	}
	ts, ok := r.FindTypeSet(typeSetName)
	if !ok {
		return nil, fmt.Errorf("type set %s: %w", typeSetName, contypes.ErrUnknownType)
	}
	return ts.addInstance(instanceName, target, isDefault)
}

// RemoveInstance unregisters a named instance and invalidates its handle.
func (r *Registry) RemoveInstance(typeSetName, instanceName string) error {
	ts, ok := r.FindTypeSet(typeSetName)
	if !ok {
		return fmt.Errorf("type set %s: %w", typeSetName, contypes.ErrUnknownType)
	}
	return ts.removeInstance(instanceName)
}

// Invalidate marks an instance handle dead without unregistering the name,
// simulating the target having been destroyed out from under the registry.
func (r *Registry) Invalidate(h Handle) {
	r.table.Invalidate(h)
}

// FindCommand looks up a global command set by case-insensitive name.
func (r *Registry) FindCommand(name string) (*CommandSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.commands[strings.ToLower(name)]
	return set, ok
}

// FindVariable looks up a global variable by case-insensitive name.
func (r *Registry) FindVariable(name string) (*Variable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variables[strings.ToLower(name)]
	return v, ok
}

// FindTypeSet looks up a type set by case-insensitive name.
func (r *Registry) FindTypeSet(name string) (*TypeSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts, ok := r.typeSets[strings.ToLower(name)]
	return ts, ok
}

// CommandNames returns the display names of all global commands, sorted.
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for _, set := range r.commands {
		names = append(names, set.Name)
	}
	sort.Strings(names)
	return names
}

// VariableNames returns the display names of all global variables, sorted.
func (r *Registry) VariableNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.variables))
	for _, v := range r.variables {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}

// TypeSetNames returns the display names of all type sets, sorted.
func (r *Registry) TypeSetNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.typeSets))
	for _, ts := range r.typeSets {
		names = append(names, ts.Name)
	}
	sort.Strings(names)
	return names
}

// Variables returns all global variables sorted by name.
func (r *Registry) Variables() []*Variable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vars := make([]*Variable, 0, len(r.variables))
	for _, v := range r.variables {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
