package bench

import (
	"fmt"
	"sort"
	"sync"
)

// A TestFunc is a named test entry point. It runs on its own cooperative
// task; returning nil reports the test as passed, returning an error fails
// it.
type TestFunc func(t *T) error

var registry = struct {
	sync.Mutex
	tests map[string]TestFunc
}{
	tests: make(map[string]TestFunc),
}

// Register makes a test discoverable by name. Registering the same name
// twice is a programmer error.
func Register(name string, fn TestFunc) {
	registry.Lock()
	defer registry.Unlock()

	if _, taken := registry.tests[name]; taken {
		panic(fmt.Sprintf("test %q already registered", name))
	}

	registry.tests[name] = fn
}

// Lookup returns the test registered under name.
func Lookup(name string) (TestFunc, bool) {
	registry.Lock()
	defer registry.Unlock()

	fn, ok := registry.tests[name]
	return fn, ok
}

// Names returns the registered test names, sorted.
func Names() []string {
	registry.Lock()
	defer registry.Unlock()

	names := make([]string, 0, len(registry.tests))
	for name := range registry.tests {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
