// Package storage defines the persistence contracts for Recallit: the
// transcript chunk store, the meeting metadata store, and the vector index.
// The chunk store and vector index are written independently by the indexing
// pipeline; the dual write is not atomic, and the reconcile package exists
// to close the gap when the second write fails.
//
// The badger sub-package provides the embedded implementation used in
// production and tests.
package storage
