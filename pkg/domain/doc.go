/*
Package domain contains the core types of the folio interaction core.

It defines the display mode, the contact form record, the submission state
machine and the notification model. This package is kept pure and free of
I/O, timers and concurrency; components in pkg/theme, pkg/notify and
pkg/contact own the mutable state.

# Key Entities

  - ThemeMode: the global two-valued display mode (dark, neon).
  - FormFields / Field: the contact form record and its inputs.
  - SubmissionStatus: the submission machine with its transition table.
  - Notification / Severity: transient messages shown to the user.
  - SessionSnapshot / SnapshotDiff: the read model streamed to clients.
*/
package domain
