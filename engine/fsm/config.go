package fsm

// RootConfig is the top-level TOML document
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig is a single state definition
type StateConfig struct {
	Parent      string             `toml:"parent"`
	OnEnter     []ActionConfig     `toml:"on_enter"`
	OnExit      []ActionConfig     `toml:"on_exit"`
	Transitions []TransitionConfig `toml:"transitions"`
}

// TransitionConfig is a transition definition
type TransitionConfig struct {
	Trigger string         `toml:"trigger"` // event name
	Target  string         `toml:"target"`
	Guard   string         `toml:"guard"`
	Actions []ActionConfig `toml:"actions"`
}

// ActionConfig is an action reference with optional arguments
type ActionConfig struct {
	Action  string         `toml:"action"`
	Event   string         `toml:"event"`   // EmitEvent only
	Payload map[string]any `toml:"payload"` // EmitEvent only
	Args    map[string]any `toml:"args"`    // actions registered with an args prototype
}
