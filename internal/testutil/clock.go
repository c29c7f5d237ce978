// Package testutil provides deterministic clocks and id generators for
// tests that construct assessment documents. Injecting these keeps
// timestamps and ids stable so golden files and equality assertions
// hold across runs.
package testutil

import (
	"sync"
	"time"
)

// ClockAt returns a clock frozen at the given instant.
func ClockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Ticking returns a clock that starts at the given instant and advances
// by step on every call. The first call returns start.
//
// Thread-safe; tests that stamp several timestamps get distinct,
// ordered values.
func Ticking(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

// StaticID returns an id generator that always yields the same value.
func StaticID(id string) func() string {
	return func() string { return id }
}
