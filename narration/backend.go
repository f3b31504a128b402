// Package narration speaks session milestones out of band: a bounded queue feeds
// a single worker that drives a command-line TTS backend.
package narration

import (
	"errors"
	"fmt"
	"os/exec"
)

// Sentinel errors
var (
	ErrNoBackend      = errors.New("no speech backend found")
	ErrUnknownBackend = errors.New("unknown speech backend")
)

// Backend describes a CLI speech synthesizer; the line is appended as the last argument
type Backend struct {
	Name string
	Path string
	Args []string
}

// candidates in detection priority order
var candidates = []Backend{
	{Name: "espeak-ng", Args: []string{"-s", "160"}},
	{Name: "espeak", Args: []string{"-s", "160"}},
	{Name: "spd-say", Args: []string{"--wait"}}, // without --wait spd-say returns before speaking and lines overlap
	{Name: "say"},
}

// lookPath is replaced in tests
var lookPath = exec.LookPath

// DetectBackend returns the first installed synthesizer
func DetectBackend() (*Backend, error) {
	for _, c := range candidates {
		if b, err := resolve(c); err == nil {
			return b, nil
		}
	}
	return nil, ErrNoBackend
}

// LookupBackend resolves a synthesizer by name
func LookupBackend(name string) (*Backend, error) {
	for _, c := range candidates {
		if c.Name == name {
			b, err := resolve(c)
			if err != nil {
				return nil, fmt.Errorf("%w: %s not installed", ErrNoBackend, name)
			}
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

func resolve(c Backend) (*Backend, error) {
	path, err := lookPath(c.Name)
	if err != nil {
		return nil, err
	}
	b := c
	b.Path = path
	b.Args = append([]string(nil), c.Args...)
	return &b, nil
}
