package scenario

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scenario-sim/scenario-sim/sim"
	"github.com/scenario-sim/scenario-sim/sim/btree"
)

// CriterionResult is one criterion's terminal judgment: a criterion still
// holding when the run ends counts as passed.
type CriterionResult struct {
	Name   string
	Status btree.Status // Success or Failure
}

// Outcome is the terminal result of a scenario run: the tree root's status,
// the criteria judgments, and how long the run took.
type Outcome struct {
	Scenario   string
	Status     btree.Status
	Criteria   []CriterionResult
	Frames     int64
	SimSeconds float64
	TimedOut   bool
}

// Passed reports whether the run succeeded outright: tree success, every
// criterion held, no timeout.
func (o Outcome) Passed() bool {
	if o.Status != btree.Success || o.TimedOut {
		return false
	}
	for _, c := range o.Criteria {
		if c.Status != btree.Success {
			return false
		}
	}
	return true
}

// String renders the outcome as the multi-line summary the CLI prints.
func (o Outcome) String() string {
	var b strings.Builder
	verdict := "FAILURE"
	if o.Passed() {
		verdict = "SUCCESS"
	}
	fmt.Fprintf(&b, "Scenario %s: %s (tree %s", o.Scenario, verdict, o.Status)
	if o.TimedOut {
		b.WriteString(", timed out")
	}
	fmt.Fprintf(&b, ", %d frames, %.2f s)\n", o.Frames, o.SimSeconds)
	for _, c := range o.Criteria {
		fmt.Fprintf(&b, "  criterion %-40s %s\n", c.Name, c.Status)
	}
	return b.String()
}

// Run drives the scenario to its terminal status: each iteration advances
// the world one tick, ticks the behavior tree root once, then ticks every
// criterion. The run ends when the root goes terminal, a criterion fails, or
// the timeout elapses, whichever comes first; the timeout forces a Failure
// outcome regardless of what the tree was doing. Teardown of the scenario's
// actors is guaranteed on every path out.
func Run(w *sim.World, s *Scenario) Outcome {
	defer s.Teardown()

	start := w.SimTime()
	startFrame := w.Frame()
	logrus.Infof("running scenario %q from frame %d", s.Name(), startFrame+1)

	status := btree.Running
	timedOut := false
	violated := false
	criterionStatus := make([]btree.Status, len(s.criteria))
	for {
		w.Tick()
		status = s.root.Tick()
		for i, c := range s.criteria {
			criterionStatus[i] = c.Tick()
			if criterionStatus[i] == btree.Failure {
				violated = true
			}
		}
		if status.Terminal() || violated {
			break
		}
		if w.SimTime()-start >= s.timeout {
			timedOut = true
			break
		}
	}

	out := Outcome{
		Scenario:   s.Name(),
		Status:     status,
		Frames:     w.Frame() - startFrame,
		SimSeconds: w.SimTime() - start,
		TimedOut:   timedOut,
	}
	if violated || timedOut {
		out.Status = btree.Failure
	}
	for i, c := range s.criteria {
		// A criterion still Running at scenario end counts as passed.
		result := CriterionResult{Name: c.Name(), Status: btree.Success}
		if criterionStatus[i] == btree.Failure {
			result.Status = btree.Failure
		}
		out.Criteria = append(out.Criteria, result)
	}
	logrus.Infof("scenario %q finished: %s after %d frames", s.Name(), out.Status, out.Frames)
	return out
}
