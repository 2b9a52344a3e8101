// Package logger provides a small set of nil-safe slog.Attr builders used
// by the validation pipeline, the JWKS subsystem, and the resilient HTTP
// layer to keep structured-logging call sites consistent and terse.
//
// Callers bring their own *slog.Logger (configured however the host
// application configures logging); this package only standardizes the
// attribute keys used across the library's components.
//
//	log.Warn("signature verification failed",
//		logger.Issuer(issuer.ID),
//		logger.KeyID(kid),
//		logger.Algorithm(alg),
//		logger.EventType("SIGNATURE_VALIDATION_FAILED"),
//		logger.Error(err),
//	)
//
// Helpers that accept a value which may be the zero value (Error, KeyID,
// Issuer, ID) return an empty slog.Attr in that case; slog drops empty
// Attrs from output, so call sites never need a nil check.
package logger
