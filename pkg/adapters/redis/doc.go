// Package redis provides a Redis-backed submission guard, so that a contact
// session served by several replicas delivers at most once at a time.
package redis
