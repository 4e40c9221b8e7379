// Package btree executes fixed behavior trees over discrete simulation steps.
// A tree is constructed once per scenario run, ticked exactly once per step
// in depth-first left-to-right order, and discarded when its root reaches a
// terminal status. There is no dynamic rewiring and no restart. This package
// has no dependencies on sim/ — composites only know the Node interface.
package btree

import "fmt"

// Status is the result of ticking a node.
type Status uint8

const (
	// Invalid marks a node that has never been ticked.
	Invalid Status = iota
	// Running means the node has not yet reached an outcome this run.
	Running
	// Success is terminal for the node reporting it.
	Success
	// Failure is terminal and aborts ancestors according to their policy.
	Failure
)

func (s Status) String() string {
	switch s {
	case Invalid:
		return "INVALID"
	case Running:
		return "RUNNING"
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Terminal reports whether s ends the node's participation in the run.
func (s Status) Terminal() bool {
	return s == Success || s == Failure
}

// Node is a single behavior tree node: a trigger condition, a vehicle action,
// or a composite over other nodes. Tick evaluates one simulation step's worth
// of work and must not block; work spanning steps reports Running and resumes
// on the next tick.
type Node interface {
	Name() string
	Tick() Status
}
