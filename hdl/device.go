// Package hdl models the device under test as a set of named signals. The
// testbench borrows a device handle for the duration of a test; the device
// itself is owned by whoever built it.
package hdl

import (
	"fmt"
)

// Logic is the behavior of a device. Eval is called once for every edge of
// any device signal (except for edges the logic itself produces while
// evaluating), so a model can update its outputs from its inputs the way a
// circuit would settle after a clock edge.
type Logic interface {
	Eval(d *Device, cause *Signal, e Edge)
}

// LogicFunc adapts a plain function to the Logic interface.
type LogicFunc func(d *Device, cause *Signal, e Edge)

// Eval calls the wrapped function.
func (f LogicFunc) Eval(d *Device, cause *Signal, e Edge) {
	f(d, cause, e)
}

// A Device is a simulated circuit: a named collection of signals, with an
// optional Logic that defines how outputs react to edges.
type Device struct {
	name    string
	signals map[string]*Signal
	order   []string

	logic      Logic
	evaluating bool
}

// NewDevice creates a device with the given name and no signals.
func NewDevice(name string) *Device {
	return &Device{
		name:    name,
		signals: make(map[string]*Signal),
	}
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// AddSignal adds a signal with the given name and bit width to the device.
// The width must be in [1, 64] and the name must not be taken.
func (d *Device) AddSignal(name string, width int) (*Signal, error) {
	if width < 1 || width > 64 {
		return nil, fmt.Errorf(
			"signal %s.%s: width must be in [1, 64], got %d",
			d.name, name, width)
	}

	if _, taken := d.signals[name]; taken {
		return nil, fmt.Errorf(
			"signal %s.%s already exists", d.name, name)
	}

	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << uint(width)) - 1
	}

	s := &Signal{
		name:  name,
		width: width,
		mask:  mask,
		dev:   d,
	}
	d.signals[name] = s
	d.order = append(d.order, name)

	return s, nil
}

// MustAddSignal is AddSignal, panicking on error. Devices are usually
// assembled at startup where a bad signal definition is a programmer error.
func (d *Device) MustAddSignal(name string, width int) *Signal {
	s, err := d.AddSignal(name, width)
	if err != nil {
		panic(err)
	}
	return s
}

// Signal looks up a signal by name.
func (d *Device) Signal(name string) (*Signal, error) {
	s, ok := d.signals[name]
	if !ok {
		return nil, fmt.Errorf("device %s has no signal %q", d.name, name)
	}
	return s, nil
}

// MustSignal is Signal, panicking on a name that does not exist.
func (d *Device) MustSignal(name string) *Signal {
	s, err := d.Signal(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Signals returns the signals of the device in the order they were added.
func (d *Device) Signals() []*Signal {
	out := make([]*Signal, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.signals[name])
	}
	return out
}

// SetLogic attaches the behavior of the device.
func (d *Device) SetLogic(l Logic) {
	d.logic = l
}

// evalOnEdge runs the device logic for an edge on s. Writes performed by the
// logic do not recurse into another evaluation.
func (d *Device) evalOnEdge(s *Signal, e Edge) {
	if d.logic == nil || d.evaluating {
		return
	}

	d.evaluating = true
	d.logic.Eval(d, s, e)
	d.evaluating = false
}
