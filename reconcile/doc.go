// Package reconcile repairs the gap the indexing pipeline's dual write can
// leave behind: chunks are persisted before their vectors, and a failure
// between the two writes strands chunks without index entries.
//
// This package supports concurrent sweeping across meetings, progress
// tracking and retry logic with exponential backoff for embedding calls.
package reconcile
