package behaviors

import (
	"fmt"

	"github.com/scenario-sim/scenario-sim/sim/btree"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// Criterion is a pass/fail test tracked beside the behavior tree, never
// inside it: the runner ticks every criterion once per step for the whole
// run. A criterion reports Running while it holds and latches Failure once
// violated; one still Running when the scenario ends counts as passed.
type Criterion = btree.Node

// criterion latches Failure the first time violated reports true.
type criterion struct {
	name     string
	violated func() bool
	status   btree.Status
}

func (c *criterion) Name() string { return c.name }

func (c *criterion) Tick() btree.Status {
	if c.status == btree.Failure {
		return c.status
	}
	if c.violated() {
		c.status = btree.Failure
	} else {
		c.status = btree.Running
	}
	return c.status
}

// CollisionLedger is the slice of the world collision criteria consume.
type CollisionLedger interface {
	CollisionCount(id record.ActorID) int
}

// CollisionFree fails the run on the first contact involving the actor.
func CollisionFree(ledger CollisionLedger, id record.ActorID) Criterion {
	return &criterion{
		name:     fmt.Sprintf("CollisionFree(%s)", id),
		violated: func() bool { return ledger.CollisionCount(id) > 0 },
	}
}

// MaxVelocity fails once the actor's speed exceeds the allowed limit.
func MaxVelocity(v Vehicle, limit float64) Criterion {
	return &criterion{
		name:     fmt.Sprintf("MaxVelocity(%.1fm/s)", limit),
		violated: func() bool { return v.Speed() > limit },
	}
}
