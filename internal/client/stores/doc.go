// Package stores holds the client's in-memory state: the session, the
// integration token, the viewed profile and the recipe catalog.
//
// # Overview
//
// Each store is an explicitly constructed object guarded by its own mutex.
// Operations call the API without holding the lock and apply results in a
// single critical section, so state never changes at sub-operation
// granularity. Persisted fields are mirrored into the shared kvstore.
//
// # Ordering
//
// Profile and catalog loads are tagged with a per-store sequence number and
// a response that is not the latest issued is dropped. WithLastArrivalWins
// turns this off, letting whichever response completes last overwrite state.
//
// # Login
//
// SessionStore is the only owner of the signed-in login. ProfileStore reads
// it and changes it through SessionStore.Rename.
package stores
