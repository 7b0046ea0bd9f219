// Package pkglocal provides a request-scoped cache.
//
// A Cache is attached to a request context once, at the edge of the
// middleware chain, and lives exactly as long as that request. Independent
// pieces of code (middleware, hooks, handlers) memoize values in it keyed by
// their Go type:
//   - GetOrInit runs the initializer at most once per request and type.
//   - Get reads a value without ever triggering initialization.
//
// Because the cache is stored as a pointer, every r.WithContext derivative of
// the request sees the same slots.
package pkglocal
