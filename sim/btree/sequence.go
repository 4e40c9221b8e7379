package btree

import "fmt"

// Sequence runs its children strictly in order, remembering which child is in
// progress across ticks. A Running child pauses the scan and later children
// are not consulted that tick; Failure fails the sequence immediately;
// Success hands off to the next child within the same tick. The sequence
// succeeds only after every child has succeeded in order. Once terminal it
// never ticks a child again.
type Sequence struct {
	name     string
	children []Node
	current  int
	status   Status
}

// NewSequence builds a sequence over children. At least one child is
// required.
func NewSequence(name string, children ...Node) *Sequence {
	if len(children) == 0 {
		panic("NewSequence: at least one child required")
	}
	return &Sequence{name: name, children: children}
}

func (s *Sequence) Name() string { return s.name }

// Status returns the result of the most recent Tick, or Invalid before the
// first one.
func (s *Sequence) Status() Status { return s.status }

func (s *Sequence) Tick() Status {
	if s.status.Terminal() {
		return s.status
	}
	for s.current < len(s.children) {
		child := s.children[s.current]
		switch st := child.Tick(); st {
		case Running:
			s.status = Running
			return s.status
		case Failure:
			s.status = Failure
			return s.status
		case Success:
			s.current++
		default:
			panic(fmt.Sprintf("Sequence %q: child %q ticked to %v", s.name, child.Name(), st))
		}
	}
	s.status = Success
	return s.status
}
