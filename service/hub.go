package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrDuplicate    = errors.New("service already registered")
	ErrMissingDep   = errors.New("service depends on unregistered service")
	ErrCircularDeps = errors.New("circular dependency detected in services")
)

// Hub owns service instances and their start/stop ordering
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // registration order, keeps the sort stable
	started  []string // for reverse-order stop
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
	}
}

// Register adds a service instance
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.services[name] = svc
	h.order = append(h.order, name)
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.services[name]
	return svc, ok
}

// StartAll starts every service in dependency order
// On failure the already-started services are stopped in reverse order
func (h *Hub) StartAll(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sorted, err := h.topologicalSort()
	if err != nil {
		return err
	}

	h.started = h.started[:0]
	for _, name := range sorted {
		if err := h.services[name].Start(ctx); err != nil {
			h.stopStarted()
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order
// Errors are logged, every service gets its Stop call
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopStarted()
}

func (h *Hub) stopStarted() {
	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("service %s stop: %v", name, err)
		}
	}
	h.started = h.started[:0]
}

// Started returns the names of running services in start order
func (h *Hub) Started() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.started...)
}

// topologicalSort orders services with Kahn's algorithm, ties in registration order
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for _, name := range h.order {
		for _, dep := range h.services[name].Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("%w: %s -> %s", ErrMissingDep, name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for _, name := range h.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	result := make([]string, 0, len(h.services))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, ErrCircularDeps
	}
	return result, nil
}
