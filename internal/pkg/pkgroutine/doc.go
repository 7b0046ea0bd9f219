// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and turns
// panics into errors so that background work (such as the HTTP listener) does
// not crash the process silently.
package pkgroutine
