package btree

// Policy selects how a Parallel composite aggregates child outcomes.
type Policy uint8

const (
	// SuccessOnOne succeeds as soon as any child succeeds, and fails only
	// when every child has failed.
	SuccessOnOne Policy = iota
	// SuccessOnAll fails as soon as any child fails, and succeeds only when
	// every child has succeeded.
	SuccessOnAll
)

func (p Policy) String() string {
	if p == SuccessOnAll {
		return "SUCCESS_ON_ALL"
	}
	return "SUCCESS_ON_ONE"
}

// Parallel ticks all of its children every tick, left to right, regardless of
// their individual statuses, and aggregates the children's latest statuses
// under its policy. Once the composite is terminal its children are never
// ticked again, which abandons sibling actions still in flight.
type Parallel struct {
	name     string
	policy   Policy
	children []Node
	statuses []Status
	status   Status
}

// NewParallel builds a parallel composite over children. At least one child
// is required.
func NewParallel(name string, policy Policy, children ...Node) *Parallel {
	if len(children) == 0 {
		panic("NewParallel: at least one child required")
	}
	return &Parallel{
		name:     name,
		policy:   policy,
		children: children,
		statuses: make([]Status, len(children)),
	}
}

func (p *Parallel) Name() string { return p.name }

// Status returns the result of the most recent Tick, or Invalid before the
// first one.
func (p *Parallel) Status() Status { return p.status }

func (p *Parallel) Tick() Status {
	if p.status.Terminal() {
		return p.status
	}
	for i, child := range p.children {
		p.statuses[i] = child.Tick()
	}
	p.status = p.aggregate()
	return p.status
}

func (p *Parallel) aggregate() Status {
	successes, failures := 0, 0
	for _, st := range p.statuses {
		switch st {
		case Success:
			successes++
		case Failure:
			failures++
		}
	}
	switch p.policy {
	case SuccessOnAll:
		if failures > 0 {
			return Failure
		}
		if successes == len(p.children) {
			return Success
		}
	default: // SuccessOnOne
		if successes > 0 {
			return Success
		}
		if failures == len(p.children) {
			return Failure
		}
	}
	return Running
}
