package bench

import (
	"fmt"

	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/sim"
)

// DefaultCycles is the number of clock cycles a driver runs when none is
// given.
const DefaultCycles = 1000

// A ClockedDriver drives a free-running clock into the device under test
// and performs one verification step on each falling clock edge.
//
// The zero value, run against a device with a "clk" signal, reproduces the
// minimal bench: 1000 cycles, 10 microsecond half period, one progress line
// per cycle, no assertion. Supplying Expected turns the verification step
// into a real check: after each falling edge i the Output signal must read
// Expected[i], and the first mismatch fails the run with an AssertionError
// carrying the cycle index and both values.
type ClockedDriver struct {
	// Clock is the name of the clock input signal. Defaults to "clk".
	Clock string

	// Output is the name of the observed output signal. Only consulted
	// when Expected is set. Defaults to "q".
	Output string

	// Cycles is the number of falling edges to observe. Defaults to
	// DefaultCycles.
	Cycles int

	// HalfPeriod is the duration of each clock phase. Defaults to
	// DefaultHalfPeriod.
	HalfPeriod sim.VTimeInSec

	// Expected holds the value Output must carry after each falling edge.
	// Nil disables the check; the intended sequence for a real device must
	// be supplied by whoever knows the device, never guessed.
	Expected []uint64
}

// Run executes the driver on t. It starts the background clock, observes
// the configured number of falling edges, and performs one verification
// step after each. The clock is stopped when Run returns, whether the test
// passed or not.
func (d ClockedDriver) Run(t *T) error {
	if d.Cycles < 0 {
		return fmt.Errorf("cycle count must not be negative, got %d", d.Cycles)
	}

	cycles := d.Cycles
	if cycles == 0 {
		cycles = DefaultCycles
	}

	clockName := d.Clock
	if clockName == "" {
		clockName = "clk"
	}

	clk, err := t.Device().Signal(clockName)
	if err != nil {
		return err
	}

	q, err := d.outputSignal(t, cycles)
	if err != nil {
		return err
	}

	halfPeriod := d.HalfPeriod
	if halfPeriod <= 0 {
		halfPeriod = DefaultHalfPeriod
	}

	c := NewClock(clk, halfPeriod)
	c.Start(t.Engine())
	defer c.Stop()

	for i := 0; i < cycles; i++ {
		t.beginCycle()
		t.Wait(FallingEdge(clk))
		t.finishCycle(i)

		if q == nil {
			continue
		}

		if observed := q.Read(); observed != d.Expected[i] {
			return &AssertionError{
				Cycle:    i,
				Expected: d.Expected[i],
				Observed: observed,
			}
		}
	}

	return nil
}

func (d ClockedDriver) outputSignal(t *T, cycles int) (*hdl.Signal, error) {
	if d.Expected == nil {
		return nil, nil
	}

	if len(d.Expected) < cycles {
		return nil, fmt.Errorf(
			"expected value sequence covers %d cycles, need %d",
			len(d.Expected), cycles)
	}

	outputName := d.Output
	if outputName == "" {
		outputName = "q"
	}

	return t.Device().Signal(outputName)
}
