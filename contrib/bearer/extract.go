package bearer

import (
	"net/http"
	"strings"
)

// Extractor pulls a raw token string out of an HTTP request, returning ""
// when no credential is present.
type Extractor func(r *http.Request) string

// FromRequest extracts a token from the Authorization header using the
// Bearer scheme. A header present without the "Bearer " prefix is
// returned as-is, since some clients send the raw token unprefixed.
func FromRequest(r *http.Request) string {
	return FromRequestWithScheme(r, "Bearer")
}

// FromRequestWithScheme extracts a token from the Authorization header
// using a custom scheme, e.g. "DPoP". Unlike FromRequest, a header that
// doesn't carry the given scheme is treated as absent.
func FromRequestWithScheme(r *http.Request, scheme string) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	prefix := scheme + " "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	if scheme == "Bearer" {
		return strings.TrimSpace(auth)
	}
	return ""
}

// FromHeader returns an Extractor that reads the token from a named
// header verbatim, e.g. "X-Api-Key".
func FromHeader(name string) Extractor {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}

// FromQuery returns an Extractor that reads the token from a URL query
// parameter.
func FromQuery(param string) Extractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// FromCookie returns an Extractor that reads the token from a named
// cookie's value.
func FromCookie(name string) Extractor {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// FromMultiple returns an Extractor that tries each extractor in order
// and returns the first non-empty token found.
func FromMultiple(extractors ...Extractor) Extractor {
	return func(r *http.Request) string {
		for _, extract := range extractors {
			if token := extract(r); token != "" {
				return token
			}
		}
		return ""
	}
}
