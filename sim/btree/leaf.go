package btree

// condition is a monotone leaf: it evaluates a predicate each tick and
// latches Success the first time the predicate holds. Conditions never fail;
// an unreachable predicate leaves the node Running until an ancestor policy
// or the scenario timeout ends the run.
type condition struct {
	name   string
	test   func() bool
	status Status
}

// NewCondition wraps test as a monotone condition node. After the first tick
// on which test reports true, the node stays Success and test is not called
// again.
func NewCondition(name string, test func() bool) Node {
	if test == nil {
		panic("NewCondition: test must not be nil")
	}
	return &condition{name: name, test: test}
}

func (c *condition) Name() string { return c.name }

func (c *condition) Tick() Status {
	if c.status == Success {
		return Success
	}
	if c.test() {
		c.status = Success
	} else {
		c.status = Running
	}
	return c.status
}

// action is a leaf that applies a control command each tick until its own
// completion condition reports a terminal status.
type action struct {
	name   string
	tick   func() Status
	status Status
}

// NewAction wraps tick as an action leaf. The function is called once per
// tick while it reports Running; once it reports a terminal status the leaf
// latches that status and tick is not called again.
func NewAction(name string, tick func() Status) Node {
	if tick == nil {
		panic("NewAction: tick must not be nil")
	}
	return &action{name: name, tick: tick}
}

func (a *action) Name() string { return a.name }

func (a *action) Tick() Status {
	if a.status.Terminal() {
		return a.status
	}
	a.status = a.tick()
	return a.status
}
