/*
Package notify implements the ephemeral notification queue.

Every notification is listed in insertion order and removed either manually
or automatically once its time-to-live elapses, whichever happens first.
Timers go through a ports.Scheduler so tests can drive time by hand.
*/
package notify
