package narration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// Narrator speaks one line, blocking until done or ctx expires
type Narrator interface {
	Speak(ctx context.Context, text string) error
}

// ExecNarrator runs a TTS command per line
type ExecNarrator struct {
	backend *Backend
	run     func(ctx context.Context, name string, args ...string) error
}

// NewExecNarrator speaks through b
func NewExecNarrator(b *Backend) *ExecNarrator {
	return &ExecNarrator{backend: b, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	// Synthesizer chatter must not reach the terminal
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Speak implements Narrator
func (n *ExecNarrator) Speak(ctx context.Context, text string) error {
	args := append(append([]string(nil), n.backend.Args...), text)
	if err := n.run(ctx, n.backend.Path, args...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: timed out: %w", n.backend.Name, ctx.Err())
		}
		return fmt.Errorf("%s: %w", n.backend.Name, err)
	}
	return nil
}

// Backend returns the synthesizer in use, reported once at startup
func (n *ExecNarrator) Backend() *Backend { return n.backend }

// LogNarrator writes lines to the debug log instead of speaking them
type LogNarrator struct{}

// Speak implements Narrator
func (LogNarrator) Speak(_ context.Context, text string) error {
	log.Printf("narration: %s", text)
	return nil
}

// NewNarrator picks a narrator by backend name: "log", "auto" or a synthesizer name
// "auto" falls back to the log narrator when nothing is installed
func NewNarrator(backend string) (Narrator, error) {
	switch backend {
	case "log":
		return LogNarrator{}, nil
	case "", "auto":
		b, err := DetectBackend()
		if err != nil {
			log.Printf("narration: %v, logging lines instead", err)
			return LogNarrator{}, nil
		}
		return NewExecNarrator(b), nil
	default:
		b, err := LookupBackend(backend)
		if err != nil {
			return nil, err
		}
		return NewExecNarrator(b), nil
	}
}

// lineContext bounds one Speak call
func lineContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
