// Package task provides a small in-process background task runner: a
// bounded queue drained by a fixed pool of worker goroutines. It carries
// work that must not delay request handling, currently achievement
// evaluation after reviews. Tasks are not persisted; everything queued here
// is idempotent and cheap to recompute, so losing the queue on shutdown is
// acceptable.
package task
