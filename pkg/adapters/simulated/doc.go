// Package simulated provides a stand-in ports.Sender. No message leaves the
// process; delivery is a timed pause with a configurable outcome.
package simulated
