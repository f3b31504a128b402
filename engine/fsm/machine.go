package fsm

import (
	"fmt"

	"github.com/lixenwraith/gesture-pong/events"
)

// NewMachine creates an empty machine with EmitEvent unregistered
// Callers register guards and actions before LoadConfig
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]actionEntry[T]),
	}
}

// RegisterGuard adds a predicate to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds an argument-less side effect to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = actionEntry[T]{fn: fn}
}

// RegisterActionArgs adds a side effect whose TOML args decode into newArgs()
func (m *Machine[T]) RegisterActionArgs(name string, fn ActionFunc[T], newArgs func() any) {
	m.actionReg[name] = actionEntry[T]{fn: fn, newArgs: newArgs}
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d: %w", m.InitialStateID, ErrUnknownState)
	}

	m.activeStateID = node.ID
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// HandleEvent offers an event to the active leaf then its ancestors
// The first transition whose guard passes fires; returns whether one fired
func (m *Machine[T]) HandleEvent(ctx T, et events.EventType) bool {
	for id := m.activeStateID; id != StateNone; {
		node := m.nodes[id]
		for i := range node.Transitions {
			tr := &node.Transitions[i]
			if tr.Event != et {
				continue
			}
			if tr.Guard == nil || tr.Guard(ctx) {
				m.transition(ctx, tr)
				return true
			}
		}
		id = node.ParentID
	}
	return false
}

// transition exits up to the LCA, runs transition actions, enters down to target
// A self-transition runs only the transition actions
func (m *Machine[T]) transition(ctx T, tr *Transition[T]) {
	if tr.TargetID == m.activeStateID {
		runActions(ctx, tr.Actions)
		return
	}

	target, ok := m.nodes[tr.TargetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state ID %d", tr.TargetID))
	}

	lca := -1
	for i := 0; i < len(m.activePath) && i < len(target.Path); i++ {
		if m.activePath[i] != target.Path[i] {
			break
		}
		lca = i
	}

	for i := len(m.activePath) - 1; i > lca; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}

	runActions(ctx, tr.Actions)

	// Commit before entering so enter actions observe the new state
	m.activeStateID = target.ID
	m.activePath = append(m.activePath[:0], target.Path...)

	for i := lca + 1; i < len(target.Path); i++ {
		runActions(ctx, m.nodes[target.Path[i]].OnEnter)
	}
}

// Current returns the active leaf name, empty before Init
func (m *Machine[T]) Current() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether the named state is the leaf or one of its ancestors
func (m *Machine[T]) InState(name string) bool {
	for _, id := range m.activePath {
		if m.nodes[id].Name == name {
			return true
		}
	}
	return false
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
