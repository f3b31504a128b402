package fsm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/gesture-pong/events"
)

var (
	ErrUnknownState  = errors.New("fsm: unknown state")
	ErrUnknownAction = errors.New("fsm: unknown action")
	ErrUnknownGuard  = errors.New("fsm: unknown guard")
	ErrUnknownEvent  = errors.New("fsm: unknown event")
	ErrUnknownKey    = errors.New("fsm: unknown argument key")
)

// EmitEvent is the name of the built-in action compiled from event/payload
const EmitEvent = "EmitEvent"

// LoadFile reads a TOML graph from disk
func (m *Machine[T]) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read FSM config: %w", err)
	}
	return m.LoadConfig(data)
}

// LoadConfig parses a TOML graph and replaces the machine's nodes
// Every state, guard, action and event reference is resolved here
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return fmt.Errorf("decode FSM config: %w", err)
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}

	m.nodes = make(map[StateID]*Node[T])
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	m.AddState(StateRoot, "Root", StateNone)
	nameToID := map[string]StateID{"Root": StateRoot}
	if _, ok := config.States["Root"]; !ok {
		config.States["Root"] = &StateConfig{}
	}

	// Sorted for deterministic IDs
	names := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for i, name := range names {
		nameToID[name] = StateID(i + 2)
	}

	for _, name := range append([]string{"Root"}, names...) {
		cfg := config.States[name]
		id := nameToID[name]

		node := m.nodes[StateRoot]
		if id != StateRoot {
			parent := cfg.Parent
			if parent == "" {
				parent = "Root"
			}
			parentID, ok := nameToID[parent]
			if !ok {
				return fmt.Errorf("state '%s' parent '%s': %w", name, parent, ErrUnknownState)
			}
			node = m.AddState(id, name, parentID)
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initial := config.InitialState
	if initial == "" {
		return fmt.Errorf("missing initial state: %w", ErrUnknownState)
	}
	initialID, ok := nameToID[initial]
	if !ok {
		return fmt.Errorf("initial state '%s': %w", initial, ErrUnknownState)
	}
	m.InitialStateID = initialID
	return nil
}

// GetStateID resolves a state name to its ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		entry, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("'%s': %w", cfg.Action, ErrUnknownAction)
		}

		var args any
		switch {
		case cfg.Action == EmitEvent:
			if cfg.Event == "" {
				return nil, fmt.Errorf("%s requires 'event'", EmitEvent)
			}
			et, ok := events.GetEventType(cfg.Event)
			if !ok || et == 0 {
				return nil, fmt.Errorf("'%s': %w", cfg.Event, ErrUnknownEvent)
			}
			payload := events.NewPayloadStruct(et)
			if payload != nil && cfg.Payload != nil {
				if err := decodeTable(cfg.Payload, payload); err != nil {
					return nil, fmt.Errorf("payload of '%s': %w", cfg.Event, err)
				}
			}
			args = &EmitEventArgs{Type: et, Payload: payload}

		case entry.newArgs != nil:
			args = entry.newArgs()
			if cfg.Args != nil {
				if err := decodeTable(cfg.Args, args); err != nil {
					return nil, fmt.Errorf("args of '%s': %w", cfg.Action, err)
				}
			}

		case cfg.Args != nil:
			return nil, fmt.Errorf("action '%s' takes no args", cfg.Action)
		}

		actions = append(actions, Action[T]{Name: cfg.Action, Func: entry.fn, Args: args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return fmt.Errorf("target '%s': %w", cfg.Target, ErrUnknownState)
		}

		et, ok := events.GetEventType(cfg.Trigger)
		if !ok {
			return fmt.Errorf("trigger '%s': %w", cfg.Trigger, ErrUnknownEvent)
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			if guard, ok = m.guardReg[cfg.Guard]; !ok {
				return fmt.Errorf("'%s': %w", cfg.Guard, ErrUnknownGuard)
			}
		}

		actions, err := m.compileActions(cfg.Actions)
		if err != nil {
			return fmt.Errorf("%s -> %s: %w", cfg.Trigger, cfg.Target, err)
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    et,
			Guard:    guard,
			Actions:  actions,
		})
	}
	return nil
}

// decodeTable round-trips a parsed inline table through the encoder so it can
// be decoded into a typed struct
func decodeTable(table map[string]any, target any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(table); err != nil {
		return err
	}
	md, err := toml.Decode(buf.String(), target)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}
	return nil
}
