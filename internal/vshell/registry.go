// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry is the registry used by shells that do not set their own.
// Built-ins register themselves during package initialization.
var DefaultRegistry = NewRegistry()

// Registry maps command names to built-in implementations.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Panics if the name is empty or already registered.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		panic("vshell: cannot register command with empty name")
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("vshell: command %q already registered", name))
	}
	r.commands[name] = cmd
}

// Lookup retrieves a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the names of all registered commands in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a command by name. args must include the command name as args[0].
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("[vtail] %s: command not found", name)
	}
	return cmd.Run(ctx, args)
}

// RegisterDefault registers a command in the DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}

// wrapError prefixes err with "[vtail] <cmd>:". Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[vtail] %s: %w", cmdName, err)
}
