// Package mcp exposes the display-mode store and contact sessions as Model
// Context Protocol tools, over stdio or SSE.
package mcp
