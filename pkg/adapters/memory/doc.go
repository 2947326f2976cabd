// Package memory provides in-process adapters for single-replica deployments
// and tests.
package memory
