package hdl

// An Edge is a transition of the least significant bit of a signal.
type Edge int

// The possible transitions of a signal.
const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// A Signal is an addressable bit or bit-vector within a device, accessed by
// name. A signal remembers its previous value so that writes can be
// classified as rising or falling edges.
//
// Watchers are one-shot: once fired they must be registered again. They fire
// synchronously inside the write that produces the watched edge, after the
// device logic has been evaluated, so an observer woken by a clock edge
// already sees the device's post-edge outputs.
type Signal struct {
	name  string
	width int
	mask  uint64

	value uint64
	prev  uint64

	dev *Device

	risingWatchers  []func()
	fallingWatchers []func()
}

// Name returns the signal name.
func (s *Signal) Name() string {
	return s.name
}

// Width returns the number of bits in the signal.
func (s *Signal) Width() int {
	return s.width
}

// Read returns the current value of the signal.
func (s *Signal) Read() uint64 {
	return s.value
}

// Bit returns the least significant bit of the signal as a bool.
func (s *Signal) Bit() bool {
	return s.value&1 == 1
}

// Prev returns the value the signal held before the last write.
func (s *Signal) Prev() uint64 {
	return s.prev
}

// Set writes a value to the signal. Values wider than the signal are
// truncated to the signal width. If the write flips the least significant
// bit, the device logic is evaluated and the matching edge watchers fire.
func (s *Signal) Set(v uint64) Edge {
	v &= s.mask

	s.prev = s.value
	s.value = v

	e := classifyEdge(s.prev, v)
	if e == EdgeNone {
		return e
	}

	if s.dev != nil {
		s.dev.evalOnEdge(s, e)
	}

	s.fireWatchers(e)

	return e
}

// Toggle flips the least significant bit of the signal.
func (s *Signal) Toggle() Edge {
	return s.Set(s.value ^ 1)
}

// OnEdge registers a one-shot watcher for the given edge of this signal.
func (s *Signal) OnEdge(e Edge, fn func()) {
	switch e {
	case EdgeRising:
		s.risingWatchers = append(s.risingWatchers, fn)
	case EdgeFalling:
		s.fallingWatchers = append(s.fallingWatchers, fn)
	default:
		panic("cannot watch for EdgeNone")
	}
}

func (s *Signal) fireWatchers(e Edge) {
	var watchers []func()

	// Watchers registered while firing wait for the next edge, so the list
	// is detached before any callback runs.
	switch e {
	case EdgeRising:
		watchers = s.risingWatchers
		s.risingWatchers = nil
	case EdgeFalling:
		watchers = s.fallingWatchers
		s.fallingWatchers = nil
	}

	for _, fn := range watchers {
		fn()
	}
}

func classifyEdge(prev, curr uint64) Edge {
	switch {
	case prev&1 == 0 && curr&1 == 1:
		return EdgeRising
	case prev&1 == 1 && curr&1 == 0:
		return EdgeFalling
	default:
		return EdgeNone
	}
}
