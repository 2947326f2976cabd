/*
Package session keeps the registry of live contact sessions.

Sessions live in memory only and reset when the process restarts. Hosts (the
HTTP server, the MCP server, the terminal runner) resolve a session id through
the Manager and then talk to the contact.Session directly.
*/
package session
