package bench

import (
	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/sim"
)

// A Trigger is something a testbench task can suspend on. Priming a trigger
// arranges for fire to be called, from the engine side, when the awaited
// condition occurs. Triggers are one-shot.
type Trigger interface {
	prime(t *T, fire func())
}

type edgeTrigger struct {
	sig  *hdl.Signal
	edge hdl.Edge
}

func (tr edgeTrigger) prime(_ *T, fire func()) {
	tr.sig.OnEdge(tr.edge, fire)
}

// RisingEdge triggers when the signal's least significant bit goes 0 to 1.
func RisingEdge(sig *hdl.Signal) Trigger {
	return edgeTrigger{sig: sig, edge: hdl.EdgeRising}
}

// FallingEdge triggers when the signal's least significant bit goes 1 to 0.
// Falling edges are the conventional sampling point of a synchronous bench.
func FallingEdge(sig *hdl.Signal) Trigger {
	return edgeTrigger{sig: sig, edge: hdl.EdgeFalling}
}

type timerTrigger struct {
	d sim.VTimeInSec
}

type timerEvent struct {
	sim.EventBase
}

type timerFire struct {
	fire func()
}

func (h timerFire) Handle(_ sim.Event) error {
	h.fire()
	return nil
}

func (tr timerTrigger) prime(t *T, fire func()) {
	evt := timerEvent{sim.MakeEventBase(t.Now()+tr.d, timerFire{fire})}
	t.Engine().Schedule(evt)
}

// Timer triggers after the given amount of virtual time has passed.
func Timer(d sim.VTimeInSec) Trigger {
	return timerTrigger{d: d}
}
