/*
Package http exposes the folio core over HTTP.

Routes are described by the embedded openapi.yaml (served at /openapi.yaml).
Session changes are pushed as domain.SnapshotDiff values, over Server-Sent
Events at /sessions/{id}/events and over a WebSocket at /sessions/{id}/ws.
Display mode changes are pushed at /theme/events.
*/
package http
