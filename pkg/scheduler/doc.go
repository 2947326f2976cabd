/*
Package scheduler provides implementations of ports.Scheduler.

Real defers callbacks on the Go runtime timer. Manual is a virtual clock that
only moves when Advance is called, which makes expiry and auto-reset behaviour
deterministic in tests.
*/
package scheduler
