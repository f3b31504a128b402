// Package fsm is a small hierarchical state machine whose graph is loaded from
// TOML and whose guards and actions are looked up by name in a registry.
// Events not handled by the active leaf bubble to its ancestors.
package fsm

import (
	"github.com/lixenwraith/gesture-pong/events"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic hierarchical state machine runtime
// T is the context passed to guards and actions
type Machine[T any] struct {
	// Graph, immutable after load
	nodes          map[StateID]*Node[T]
	InitialStateID StateID

	// Runtime
	activeStateID StateID
	activePath    []StateID // Root -> ... -> leaf

	guardReg  map[string]GuardFunc[T]
	actionReg map[string]actionEntry[T]
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter []Action[T]
	OnExit  []Action[T]

	// Evaluated in declaration order
	Transitions []Transition[T]
}

// Transition links a source node to a target
// Actions run after the exit chain and before the enter chain
type Transition[T any] struct {
	TargetID StateID
	Event    events.EventType
	Guard    GuardFunc[T]     // nil = always
	Actions  []Action[T]
}

// Action is a compiled side effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should fire
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// EmitEventArgs is the compiled argument of the built-in EmitEvent action
type EmitEventArgs struct {
	Type    events.EventType
	Payload any
}

type actionEntry[T any] struct {
	fn      ActionFunc[T]
	newArgs func() any // nil = action takes no args
}
