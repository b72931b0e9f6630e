// Package simulation wires the pieces of a testbench run together: the
// event engine, the data recorder, the optional monitor, and the devices
// under test.
package simulation

import (
	"io"
	"os"

	"github.com/verigo/verigo/bench"
	"github.com/verigo/verigo/datarecording"
	"github.com/verigo/verigo/hdl"
	"github.com/verigo/verigo/monitoring"
	"github.com/verigo/verigo/sim"
)

// A Simulation provides the services required to run testbenches.
type Simulation struct {
	id string

	engine       sim.Engine
	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	monitor      *monitoring.Monitor

	devices         []*hdl.Device
	deviceNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterDevice registers a device with the simulation, making it visible
// to the monitor.
func (s *Simulation) RegisterDevice(d *hdl.Device) {
	name := d.Name()
	if _, taken := s.deviceNameIndex[name]; taken {
		panic("device " + name + " already registered")
	}

	s.devices = append(s.devices, d)
	s.deviceNameIndex[name] = len(s.devices) - 1

	if s.monitor != nil {
		s.monitor.RegisterDevice(d)
	}
}

// GetDeviceByName returns the registered device with the given name, or nil.
func (s *Simulation) GetDeviceByName(name string) *hdl.Device {
	i, ok := s.deviceNameIndex[name]
	if !ok {
		return nil
	}

	return s.devices[i]
}

// BenchRunner assembles a bench.Runner for the given device: progress lines
// go to out (os.Stdout when nil), verdicts are recorded, and the monitor
// shows a progress bar of totalCycles when monitoring is on.
func (s *Simulation) BenchRunner(
	d *hdl.Device,
	out io.Writer,
	totalCycles int,
) *bench.Runner {
	if out == nil {
		out = os.Stdout
	}

	if s.runRecorder == nil {
		s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)
	}

	r := &bench.Runner{
		Engine:    s.engine,
		Device:    d,
		Out:       out,
		Observers: []bench.RunObserver{s.runRecorder},
	}

	if s.monitor != nil && totalCycles > 0 {
		r.Progress = s.monitor.CreateProgressBar(
			d.Name(), uint64(totalCycles))
	}

	return r
}

// Terminate ends the simulation: end-of-simulation handlers run and the
// recorder is closed.
func (s *Simulation) Terminate() {
	s.engine.Finished()
	s.dataRecorder.Close()
}
