/*
Package theme holds the global display mode and its presentation variables.

Store is an explicitly constructed container (no package-level singleton):
create one per process, or one per test, and inject it. Writes notify
observers synchronously, so every observer has seen a new mode before Set or
Toggle returns.

Palettes maps each mode to a fixed table of CSS custom properties loaded from
the embedded palettes.yaml. Applier bridges the two for a rendering target.
*/
package theme
