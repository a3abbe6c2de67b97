package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"conshell/pkg/contypes"
)

// CommandSet groups every overload registered under one command name.
// Overloads keep registration order; dispatch tries them in that order.
type CommandSet struct {
	Name      string
	Overloads []contypes.Overload
}

// Variable is one registered variable with its accessor descriptor.
type Variable struct {
	Name string
	Spec contypes.VariableSpec
}

// Writable reports whether the variable accepts set attempts.
func (v *Variable) Writable() bool {
	return v.Spec.Setter != nil
}

// Instance is one live object registered under a type set. It holds no
// strong reference to its target; Target resolution goes through the
// registry's instance table and may fail once the target is gone.
type Instance struct {
	Name   string
	Type   *TypeSet
	handle Handle
	table  *instanceTable
}

// Target resolves the live target object, reporting false when the
// liveness check fails.
func (i *Instance) Target() (any, bool) {
	return i.table.Get(i.handle)
}

// Handle exposes the instance's table handle, mainly so tests and teardown
// code can invalidate targets deterministically.
func (i *Instance) Handle() Handle {
	return i.handle
}

// TypeSet is a named category of instances sharing a command/variable
// surface. It carries at most one default instance plus uniquely named
// instances, all keyed case-insensitively.
type TypeSet struct {
	Name string

	mu        sync.RWMutex
	commands  map[string]*CommandSet
	variables map[string]*Variable
	def       *Instance
	named     map[string]*Instance
	table     *instanceTable
}

func newTypeSet(name string, table *instanceTable) *TypeSet {
	return &TypeSet{
		Name:      name,
		commands:  make(map[string]*CommandSet),
		variables: make(map[string]*Variable),
		named:     make(map[string]*Instance),
		table:     table,
	}
}

// RegisterCommand appends an overload to the named command set scoped to
// this type, creating the set on first use.
func (ts *TypeSet) RegisterCommand(name string, ov contypes.Overload) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	key := strings.ToLower(name)
	set, ok := ts.commands[key]
	if !ok {
		set = &CommandSet{Name: name}
		ts.commands[key] = set
	}
	set.Overloads = append(set.Overloads, ov)
	return nil
}

// RegisterVariable adds a variable scoped to this type.
func (ts *TypeSet) RegisterVariable(name string, spec contypes.VariableSpec) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if spec.Getter == nil {
		return fmt.Errorf("variable %s requires a getter", name)
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := ts.variables[key]; exists {
		return fmt.Errorf("variable %s: %w", name, contypes.ErrDuplicateName)
	}
	ts.variables[key] = &Variable{Name: name, Spec: spec}
	return nil
}

// FindCommand looks up a command set by case-insensitive name.
func (ts *TypeSet) FindCommand(name string) (*CommandSet, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	set, ok := ts.commands[strings.ToLower(name)]
	return set, ok
}

// FindVariable looks up a variable by case-insensitive name.
func (ts *TypeSet) FindVariable(name string) (*Variable, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	v, ok := ts.variables[strings.ToLower(name)]
	return v, ok
}

// DefaultInstance returns the current default instance, if any.
func (ts *TypeSet) DefaultInstance() (*Instance, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	if ts.def == nil {
		return nil, false
	}
	return ts.def, true
}

// FindNamedInstance looks up a named instance case-insensitively.
func (ts *TypeSet) FindNamedInstance(name string) (*Instance, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	inst, ok := ts.named[strings.ToLower(name)]
	return inst, ok
}

func (ts *TypeSet) addInstance(name string, target any, isDefault bool) (*Instance, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	inst := &Instance{Name: name, Type: ts, table: ts.table}

	if isDefault {
		// Last registration wins for the default slot; the previous
		// default's handle is invalidated so stale lookups fail closed.
		if ts.def != nil {
			ts.table.Invalidate(ts.def.handle)
		}
		inst.handle = ts.table.Put(target)
		ts.def = inst
		return inst, nil
	}

	if name == "" {
		return nil, fmt.Errorf("named instance requires a name")
	}
	key := strings.ToLower(name)
	if _, exists := ts.named[key]; exists {
		return nil, fmt.Errorf("instance %s.%s: %w", ts.Name, name, contypes.ErrDuplicateName)
	}
	inst.handle = ts.table.Put(target)
	ts.named[key] = inst
	return inst, nil
}

func (ts *TypeSet) removeInstance(name string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	key := strings.ToLower(name)
	inst, ok := ts.named[key]
	if !ok {
		return fmt.Errorf("instance %s.%s: %w", ts.Name, name, contypes.ErrUnknownInstance)
	}
	ts.table.Invalidate(inst.handle)
	delete(ts.named, key)
	return nil
}

// CommandNames returns the display names of all commands in this scope,
// sorted for deterministic listings and completion.
func (ts *TypeSet) CommandNames() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.commands))
	for _, set := range ts.commands {
		names = append(names, set.Name)
	}
	sort.Strings(names)
	return names
}

// VariableNames returns the display names of all variables in this scope.
func (ts *TypeSet) VariableNames() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.variables))
	for _, v := range ts.variables {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}

// InstanceNames returns the display names of all named instances.
func (ts *TypeSet) InstanceNames() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.named))
	for _, inst := range ts.named {
		names = append(names, inst.Name)
	}
	sort.Strings(names)
	return names
}

// Variables returns all variables in this scope sorted by name, for the
// "*" listing pseudo-command.
func (ts *TypeSet) Variables() []*Variable {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	vars := make([]*Variable, 0, len(ts.variables))
	for _, v := range ts.variables {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
