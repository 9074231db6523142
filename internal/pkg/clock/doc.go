// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly. The admission limiter relies on this to test window
// boundaries with a deterministic fake clock.
package clock
