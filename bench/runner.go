package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/sim"
)

// A Result summarizes one test run.
type Result struct {
	Name   string
	Passed bool
	Err    error

	// Cycles is the number of verification steps the test completed.
	Cycles int

	// EndTime is the virtual time at which the test ended.
	EndTime sim.VTimeInSec

	// WallDuration is how long the run took on the host.
	WallDuration time.Duration
}

// A RunObserver is notified when tests start and finish. The recording
// layer implements it.
type RunObserver interface {
	TestStarted(name string)
	TestFinished(r Result)
}

// A Runner invokes registered tests against a device. The runner owns the
// wiring: it spawns the test task, kicks it off at the current virtual
// time, runs the engine to completion, and collects the verdict.
type Runner struct {
	Engine sim.Engine
	Device *hdl.Device

	// Out receives the per-cycle progress lines. Defaults to os.Stdout.
	Out io.Writer

	// Progress, when set, tracks cycles as they are awaited and completed.
	Progress Progress

	Observers []RunObserver
}

// RunTest runs the test registered under name and returns its result. The
// device handle is borrowed by the test for the duration of the run.
func (r *Runner) RunTest(name string) Result {
	fn, ok := Lookup(name)
	if !ok {
		res := Result{
			Name: name,
			Err:  fmt.Errorf("no test registered under %q", name),
		}
		r.notifyFinished(res)
		return res
	}

	return r.run(name, fn)
}

func (r *Runner) run(name string, fn TestFunc) Result {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	t := &T{
		name:     name,
		engine:   r.Engine,
		dev:      r.Device,
		out:      out,
		progress: r.Progress,
	}
	t.task = startTask(func() error { return fn(t) })

	for _, o := range r.Observers {
		o.TestStarted(name)
	}

	start := time.Now()

	r.Engine.Schedule(makeKickoffEvent(r.Engine.CurrentTime(), t.task))
	err := r.Engine.Run()

	res := Result{
		Name:         name,
		Cycles:       t.cycle,
		EndTime:      r.Engine.CurrentTime(),
		WallDuration: time.Since(start),
	}

	switch {
	case err != nil:
		res.Err = err
	case !t.task.finished:
		// The event queue drained while the test was still suspended:
		// whatever it was waiting for can never fire.
		res.Err = fmt.Errorf(
			"test %q stalled at %.10f after %d cycles: nothing left to wait for",
			name, res.EndTime, t.cycle)
	default:
		res.Err = t.task.err
	}
	res.Passed = res.Err == nil

	r.notifyFinished(res)

	return res
}

func (r *Runner) notifyFinished(res Result) {
	for _, o := range r.Observers {
		o.TestFinished(res)
	}
}
