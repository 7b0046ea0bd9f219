// Package demo wires a single demonstration endpoint that shows request
// correlation and span-scoped logging working end to end.
package demo
