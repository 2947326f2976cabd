// Package cli holds the plumbing shared by the folio commands: building the
// application stack from configuration, signal handling, and the contact
// console.
package cli
