package bench

import (
	"fmt"

	"github.com/verigo/verigo/sim"
)

// A task is a testbench sequence running on its own goroutine. The goroutine
// is multiplexed cooperatively with the engine through a strict resume/yield
// handshake: exactly one of the two runs at any instant. The engine resumes
// the task and then blocks until the task either suspends at its next wait
// or finishes, which gives the single-threaded run-to-completion semantics
// hardware testbenches expect.
type task struct {
	toTask   chan struct{}
	toEngine chan struct{}

	finished bool
	err      error
}

// startTask spawns the body goroutine. The body does not run until the
// first resume.
func startTask(body func() error) *task {
	t := &task{
		toTask:   make(chan struct{}),
		toEngine: make(chan struct{}),
	}

	go func() {
		<-t.toTask

		// A panic in the body must not take the process down before the
		// verdict is recorded. It becomes a failed run instead.
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("test panicked: %v", r)
			}
			t.finished = true
			t.toEngine <- struct{}{}
		}()

		t.err = body()
	}()

	return t
}

// resume transfers control to the task. It must be called from the engine
// side and returns once the task has suspended again or finished.
func (t *task) resume() {
	t.toTask <- struct{}{}
	<-t.toEngine
}

// yieldAndWait transfers control back to the engine and blocks until the
// task is resumed. It must be called from the task side.
func (t *task) yieldAndWait() {
	t.toEngine <- struct{}{}
	<-t.toTask
}

// taskStart is the handler of the kickoff event that gives a task its first
// slice of control.
type taskStart struct {
	t *task
}

func (h taskStart) Handle(_ sim.Event) error {
	h.t.resume()
	return nil
}

type kickoffEvent struct {
	sim.EventBase
}

func makeKickoffEvent(time sim.VTimeInSec, t *task) kickoffEvent {
	return kickoffEvent{sim.MakeEventBase(time, taskStart{t})}
}
