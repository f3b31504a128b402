package fsm

import (
	"errors"
	"fmt"
	"strings"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/gesture-pong/events"
)

type trace struct {
	log   []string
	allow bool
}

type labelArgs struct {
	Label string `toml:"label"`
}

func newTestMachine() *Machine[*trace] {
	events.InitRegistry()
	m := NewMachine[*trace]()
	m.RegisterGuard("Allowed", func(c *trace) bool { return c.allow })
	m.RegisterActionArgs("Log", func(c *trace, args any) {
		c.log = append(c.log, args.(*labelArgs).Label)
	}, func() any { return &labelArgs{} })
	m.RegisterAction("Ping", func(c *trace, _ any) { c.log = append(c.log, "ping") })
	m.RegisterAction(EmitEvent, func(c *trace, args any) {
		a := args.(*EmitEventArgs)
		c.log = append(c.log, fmt.Sprintf("emit:%s", a.Type))
	})
	return m
}

const testGraph = `
initial = "A"

[states.Root]
on_enter = [{ action = "Log", args = { label = "enter Root" } }]
transitions = [{ trigger = "EventWindowClosed", target = "Done" }]

[states.Group]
on_enter = [{ action = "Log", args = { label = "enter Group" } }]
on_exit = [{ action = "Log", args = { label = "exit Group" } }]

[states.A]
parent = "Group"
on_enter = [{ action = "Log", args = { label = "enter A" } }]
on_exit = [{ action = "Log", args = { label = "exit A" } }]

[[states.A.transitions]]
trigger = "EventMiss"
target = "B"
guard = "Allowed"
actions = [{ action = "Log", args = { label = "A->B" } }]

[states.B]
parent = "Group"
on_enter = [{ action = "Log", args = { label = "enter B" } }]

[[states.B.transitions]]
trigger = "EventRestartRequest"
target = "A"
actions = [
    { action = "Ping" },
    { action = "EmitEvent", event = "EventNarration", payload = { cue = "restarting", text = "again" } },
]

[states.Done]
on_enter = [{ action = "Log", args = { label = "enter Done" } }]
`

func loadTestMachine(t *testing.T) (*Machine[*trace], *trace) {
	t.Helper()
	m := newTestMachine()
	if err := m.LoadConfig([]byte(testGraph)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	c := &trace{}
	if err := m.Init(c); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, c
}

func TestInitEntersRootToLeaf(t *testing.T) {
	m, c := loadTestMachine(t)
	want := "enter Root,enter Group,enter A"
	if got := strings.Join(c.log, ","); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
	if m.Current() != "A" || !m.InState("Group") || !m.InState("Root") {
		t.Errorf("Current = %q", m.Current())
	}
}

func TestGuardBlocksTransition(t *testing.T) {
	m, c := loadTestMachine(t)
	c.log = nil

	if m.HandleEvent(c, events.EventMiss) {
		t.Error("guarded transition fired")
	}
	if m.Current() != "A" || len(c.log) != 0 {
		t.Errorf("state %q log %v", m.Current(), c.log)
	}
}

func TestTransitionOrderWithinGroup(t *testing.T) {
	m, c := loadTestMachine(t)
	c.log = nil
	c.allow = true

	if !m.HandleEvent(c, events.EventMiss) {
		t.Fatal("transition did not fire")
	}
	// Group is the LCA so it is neither exited nor re-entered
	want := "exit A,A->B,enter B"
	if got := strings.Join(c.log, ","); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
	if m.Current() != "B" {
		t.Errorf("Current = %q, want B", m.Current())
	}
}

func TestEmitEventPayloadCompiled(t *testing.T) {
	m, c := loadTestMachine(t)
	c.allow = true
	m.HandleEvent(c, events.EventMiss)
	c.log = nil

	m.HandleEvent(c, events.EventRestartRequest)
	want := "ping,emit:EventNarration,enter A"
	if got := strings.Join(c.log, ","); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}

	id, _ := m.GetStateID("B")
	tr := m.nodes[id].Transitions[0]
	args := tr.Actions[1].Args.(*EmitEventArgs)
	p, ok := args.Payload.(*events.NarrationPayload)
	if !ok {
		t.Fatalf("payload type %T", args.Payload)
	}
	if p.Cue != events.CueRestarting || p.Text != "again" {
		t.Errorf("payload = %+v", p)
	}
}

func TestEventBubblesToRoot(t *testing.T) {
	m, c := loadTestMachine(t)
	c.log = nil

	if !m.HandleEvent(c, events.EventWindowClosed) {
		t.Fatal("root transition did not fire")
	}
	want := "exit A,exit Group,enter Done"
	if got := strings.Join(c.log, ","); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestUnhandledEventIgnored(t *testing.T) {
	m, c := loadTestMachine(t)
	if m.HandleEvent(c, events.EventQuitRequest) {
		t.Error("unhandled event reported as handled")
	}
	if m.Current() != "A" {
		t.Errorf("Current = %q", m.Current())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := os.WriteFile(path, []byte(testGraph), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestMachine()
	if err := m.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	c := &trace{}
	if err := m.Init(c); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if m.Current() != "A" {
		t.Errorf("Current = %q, want A", m.Current())
	}

	if err := newTestMachine().LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestTickIsNotATrigger(t *testing.T) {
	m := newTestMachine()
	err := m.LoadConfig([]byte("initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"Tick\", target = \"A\" }]"))
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("LoadConfig error = %v, want ErrUnknownEvent", err)
	}
}

func TestLoadRejectsBadReferences(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  error
	}{
		{
			name:  "unknown target",
			graph: "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"EventMiss\", target = \"Nowhere\" }]",
			want:  ErrUnknownState,
		},
		{
			name:  "unknown parent",
			graph: "initial = \"A\"\n[states.A]\nparent = \"Ghost\"",
			want:  ErrUnknownState,
		},
		{
			name:  "unknown initial",
			graph: "initial = \"Z\"\n[states.A]",
			want:  ErrUnknownState,
		},
		{
			name:  "unknown trigger",
			graph: "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"EventBogus\", target = \"A\" }]",
			want:  ErrUnknownEvent,
		},
		{
			name:  "unknown emitted event",
			graph: "initial = \"A\"\n[states.A]\non_enter = [{ action = \"EmitEvent\", event = \"EventBogus\" }]",
			want:  ErrUnknownEvent,
		},
		{
			name:  "unknown action",
			graph: "initial = \"A\"\n[states.A]\non_enter = [{ action = \"Explode\" }]",
			want:  ErrUnknownAction,
		},
		{
			name:  "unknown transition action",
			graph: "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"EventMiss\", target = \"A\", actions = [{ action = \"Explode\" }] }]",
			want:  ErrUnknownAction,
		},
		{
			name:  "unknown guard",
			graph: "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"EventMiss\", target = \"A\", guard = \"Maybe\" }]",
			want:  ErrUnknownGuard,
		},
		{
			name:  "unknown argument key",
			graph: "initial = \"A\"\n[states.A]\non_enter = [{ action = \"Log\", args = { colour = \"red\" } }]",
			want:  ErrUnknownKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine()
			err := m.LoadConfig([]byte(tt.graph))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadConfig error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestArgsOnArglessActionRejected(t *testing.T) {
	m := newTestMachine()
	err := m.LoadConfig([]byte("initial = \"A\"\n[states.A]\non_enter = [{ action = \"Ping\", args = { x = 1 } }]"))
	if err == nil || !strings.Contains(err.Error(), "takes no args") {
		t.Errorf("LoadConfig error = %v", err)
	}
}

func TestBuilderDetectsMissingParent(t *testing.T) {
	m := NewMachine[*trace]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(2, "Orphan", 9)
	if err := m.CompilePaths(); !errors.Is(err, ErrUnknownState) {
		t.Errorf("CompilePaths = %v", err)
	}
}
