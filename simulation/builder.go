package simulation

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/xid"

	"github.com/verigo/verigo/datarecording"
	"github.com/verigo/verigo/monitoring"
	"github.com/verigo/verigo/sim"
)

// Builder builds a Simulation.
//
// A .env file in the working directory can override the defaults:
// VERIGO_MONITOR_PORT sets the monitoring port, VERIGO_OUTPUT sets the
// recording file name.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	envMonitorPort int
	outputFileName string
}

// MakeBuilder creates a Builder with the default configuration: monitoring
// on, random port, unique output file name.
func MakeBuilder() Builder {
	b := Builder{
		monitorOn: true,
	}

	// Missing .env files are fine, the defaults stand.
	_ = godotenv.Load()

	if port := os.Getenv("VERIGO_MONITOR_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"Ignoring VERIGO_MONITOR_PORT=%q: %s\n", port, err)
		} else {
			// Only a default. It is ignored when monitoring is off, so a
			// .env file cannot break a bench built without monitoring.
			b.envMonitorPort = p
		}
	}

	if output := os.Getenv("VERIGO_OUTPUT"); output != "" {
		b.outputFileName = output
	}

	return b
}

// WithoutMonitoring disables the monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number of the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets a custom file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		deviceNameIndex: make(map[string]int),
	}

	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "verigo_run_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)

	s.engine = sim.NewSerialEngine()

	if b.monitorOn {
		port := b.monitorPort
		if port == 0 {
			port = b.envMonitorPort
		}

		s.monitor = monitoring.NewMonitor()
		if port > 0 {
			s.monitor.WithPortNumber(port)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}
