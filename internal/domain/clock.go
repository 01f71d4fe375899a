package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests and fixture generation inject a
// fake for deterministic generated-at timestamps.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for prediction stamping. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current date in the canonical date layout.
func Today() string {
	return clock.Now().Format(DateLayout)
}
