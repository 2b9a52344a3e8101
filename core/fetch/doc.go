// Package fetch implements conditional HTTP GET with ETag caching, wrapped
// in core/retry's exponential-backoff-with-jitter policy. It is the sole
// place remote JWKS and OIDC-discovery documents touch the network.
//
// A Fetcher[T] holds a single cached {content, etag} pair behind an
// atomically-swapped pointer; cache mutation is guarded by a lock held only
// for the duration of the swap, never across the network call.
package fetch
