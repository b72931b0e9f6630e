package bench

import (
	"log"

	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/sim"
)

// DefaultHalfPeriod is the half period of a testbench clock when none is
// given: 10 microseconds of virtual time.
const DefaultHalfPeriod = 10 * sim.Microsecond

// A Clock drives a free-running square wave onto a device signal. The high
// and low phases last one half period each. Once started, the clock runs in
// the background until Stop is called; tests normally never stop it
// themselves, the runner reclaims it when the test body returns.
//
// The clock is the only writer of its signal. Everything else observes the
// signal through edge triggers.
type Clock struct {
	sig        *hdl.Signal
	halfPeriod sim.VTimeInSec

	engine  sim.Engine
	running bool
	stopped bool
}

// NewClock creates a clock on sig with the given half period.
func NewClock(sig *hdl.Signal, halfPeriod sim.VTimeInSec) *Clock {
	if halfPeriod <= 0 {
		log.Panic("clock half period must be positive")
	}

	return &Clock{
		sig:        sig,
		halfPeriod: halfPeriod,
	}
}

// ClockAtFreq creates a clock on sig that completes one full period at the
// given frequency.
func ClockAtFreq(sig *hdl.Signal, f sim.Freq) *Clock {
	return NewClock(sig, f.HalfPeriod())
}

// HalfPeriod returns the duration of one clock phase.
func (c *Clock) HalfPeriod() sim.VTimeInSec {
	return c.halfPeriod
}

// Start drives the signal low and schedules the first toggle one half
// period from now.
func (c *Clock) Start(engine sim.Engine) {
	if c.running {
		log.Panic("clock already started")
	}

	c.engine = engine
	c.running = true

	c.sig.Set(0)
	c.scheduleToggle(engine.CurrentTime() + c.halfPeriod)
}

// Stop prevents the clock from scheduling further toggles. A toggle that is
// already scheduled is discarded when it triggers.
func (c *Clock) Stop() {
	c.stopped = true
}

type toggleEvent struct {
	sim.EventBase
}

// Handle toggles the clock signal and schedules the next toggle.
func (c *Clock) Handle(_ sim.Event) error {
	if c.stopped {
		return nil
	}

	c.sig.Toggle()

	// The edge above may have finished the test and stopped the clock.
	if !c.stopped {
		c.scheduleToggle(c.engine.CurrentTime() + c.halfPeriod)
	}

	return nil
}

func (c *Clock) scheduleToggle(t sim.VTimeInSec) {
	c.engine.Schedule(toggleEvent{sim.MakeEventBase(t, c)})
}
