// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase depends on the StringID interface to avoid hard-coding a
// specific UID strategy; request correlation uses the UUID implementation.
package pkguid
