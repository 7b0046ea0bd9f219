// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, access logging, and recovery.
//
// Request observability is attached through fairings: hooks that run when a
// request starts and again once its response status is final, before any
// header byte is written. The router installs, in order, the correlation
// fairing (X-Request-Id) and the span fairing (see pkgtrace). Request hooks run
// in that order; response and abort hooks run in reverse.
package pkgrouter
