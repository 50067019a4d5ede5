// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the resourcestore.Store interface.
//
// # Purpose
//
// Every stack gets its own store while the deployment definitions are being
// built. Resources are kept in a sync.Map keyed by construct ID, so builders
// may register resources from several goroutines without a global lock.
//
// # Characteristics
//
//   - **Ephemeral:** created fresh for each stack, never persisted
//   - **Thread-Safe:** registration is a single LoadOrStore, so two racing
//     registrations of the same ID cannot both win
//   - **Deterministic:** List sorts by construct ID
package inmemorystore
