// Package content reads the portfolio's public content (GitHub profile and
// repositories, dev.to articles) and serves a bundled dataset whenever an
// upstream is unavailable. Content never feeds back into the interaction core.
package content
