// Package bench runs cooperative testbench sequences against a simulated
// device. A test body runs as a task that suspends on triggers (clock
// edges, timers) while a background clock toggles the device's clock input;
// the ClockedDriver ties the two together, observing falling edges and
// performing one verification step per cycle.
package bench
