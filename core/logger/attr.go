// Package logger provides nil-safe slog.Attr builders shared across the
// validation pipeline, the JWKS subsystem, and the resilient HTTP layer.
package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty-Attr pattern for nil safety: a call like
// log.Info("msg", logger.Error(err)) never needs an explicit nil check,
// since slog drops zero-value Attrs silently.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Issuer creates an attribute for an issuer identifier.
func Issuer(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("issuer", id)
}

// KeyID creates an attribute for a JWKS key ID (kid).
func KeyID(kid string) slog.Attr {
	if kid == "" {
		return slog.Attr{}
	}
	return slog.String("kid", kid)
}

// Algorithm creates an attribute for a JWS alg value.
func Algorithm(alg string) slog.Attr {
	return slog.String("alg", alg)
}

// EventType creates an attribute for a security event type name.
func EventType(t string) slog.Attr {
	return slog.String("event_type", t)
}

// URL creates an attribute for a request URL.
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// StatusCode creates an attribute for an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Attempt creates an attribute for a retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Component creates an attribute for a component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// ID creates a generic identifier attribute with a custom key.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

