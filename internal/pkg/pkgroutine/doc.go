// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and turns
// panics into errors so that a crashing task fails the run instead of the
// process.
package pkgroutine
