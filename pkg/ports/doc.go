/*
Package ports defines the driven ports (interfaces) of the folio core.

These interfaces decouple the state containers from external implementations,
so delivery, timing and cross-instance coordination can be swapped in tests
and production.

# Key Interfaces

  - Sender: delivers a submitted contact form (simulated in this repository).
  - Scheduler: runs deferred callbacks and returns a cancellation handle.
  - DistributedLocker: guards a submission across replicas (Redis or memory).
*/
package ports
