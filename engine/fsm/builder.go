package fsm

import "fmt"

// AddState adds a node to the graph
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	return node
}

// AddTransition appends a transition to a node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// CompilePaths computes the Root-to-node path of every node
// Must run after the graph is built and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		for curr := node; ; {
			path = append(path, curr.ID)
			if len(path) > len(m.nodes) {
				return fmt.Errorf("state '%s': parent cycle", node.Name)
			}
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d: %w", id, curr.ParentID, ErrUnknownState)
			}
			curr = parent
		}

		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path
	}
	return nil
}
