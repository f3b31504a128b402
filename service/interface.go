// Package service runs the game's long-lived collaborators (vision feed,
// narration worker, audio speaker, scoreboard) in dependency order.
package service

import "context"

// Service is a background subsystem with an explicit lifecycle
//
// Lifecycle:
//  1. Construction with its configuration
//  2. Start(ctx) - acquire resources, launch goroutines
//  3. [runtime operation, fed by the tick loop]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Start begins service operation
	// ctx is cancelled when the game shuts down
	Start(ctx context.Context) error

	// Stop halts service operation
	// Must be idempotent
	Stop() error
}
