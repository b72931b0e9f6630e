package bench

import (
	"fmt"
	"io"

	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/sim"
)

// Progress receives per-cycle updates. The monitoring package's
// ProgressBar satisfies it. A cycle is marked in progress when the test
// starts waiting for its clock edge, and moves to finished once its
// verification step completes.
type Progress interface {
	IncrementInProgress(amount uint64)
	MoveInProgressToFinished(amount uint64)
}

// T is the context handed to a test body. It carries the device handle, the
// engine, the progress output stream, and the cycle counter.
type T struct {
	name   string
	engine sim.Engine
	dev    *hdl.Device
	task   *task

	out      io.Writer
	progress Progress

	cycle int
}

// Name returns the name the test was registered under.
func (t *T) Name() string {
	return t.name
}

// Device returns the device under test.
func (t *T) Device() *hdl.Device {
	return t.dev
}

// Engine returns the engine the test runs on.
func (t *T) Engine() sim.Engine {
	return t.engine
}

// Now returns the current virtual time.
func (t *T) Now() sim.VTimeInSec {
	return t.engine.CurrentTime()
}

// Out returns the stream progress lines are written to.
func (t *T) Out() io.Writer {
	return t.out
}

// Cycles returns the number of verification steps completed so far.
func (t *T) Cycles() int {
	return t.cycle
}

// Wait suspends the test until the trigger fires. Control returns to the
// engine, which advances virtual time and runs any pending events, the
// background clock included, before the test resumes.
func (t *T) Wait(tr Trigger) {
	tr.prime(t, t.task.resume)
	t.task.yieldAndWait()
}

// beginCycle marks the next verification step as in progress. Every call
// must be paired with a finishCycle.
func (t *T) beginCycle() {
	if t.progress != nil {
		t.progress.IncrementInProgress(1)
	}
}

// finishCycle records one completed verification step and emits the
// progress line for it.
func (t *T) finishCycle(i int) {
	t.cycle = i + 1
	fmt.Fprintln(t.out, i)

	if t.progress != nil {
		t.progress.MoveInProgressToFinished(1)
	}
}

// An AssertionError reports an observed output that did not match the
// expected value for a cycle. It is fatal to the test run.
type AssertionError struct {
	Cycle    int
	Expected uint64
	Observed uint64
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf(
		"output was incorrect on the %dth cycle: expected %d, observed %d",
		e.Cycle, e.Expected, e.Observed)
}
