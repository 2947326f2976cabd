// Package tui renders folio for a terminal: the banner, notification toasts
// and markdown help, coloured from the active palette.
package tui
