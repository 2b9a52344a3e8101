package pipeline

import (
	"encoding/json"
	"sync"

	"github.com/openjwt/jwtvalidator/core/claims"
)

// TokenType selects which §6 typ/claims expectations a Validate call
// enforces.
type TokenType int

const (
	AccessToken TokenType = iota
	IDToken
	RefreshToken
)

// Content is the generic, type-agnostic result of a successful
// validation: the resolved issuer and every claim, mapped lazily on
// first access through Claim.
type Content struct {
	Issuer string
	Opaque bool // true for a non-JWT-structured refresh token
	Raw    string

	raw     map[string]json.RawMessage
	mappers *claims.Registry

	mu     sync.Mutex
	mapped map[string]claims.Value
}

func newContent(issuer string, raw map[string]json.RawMessage, mappers *claims.Registry) *Content {
	return &Content{
		Issuer:  issuer,
		raw:     raw,
		mappers: mappers,
		mapped:  make(map[string]claims.Value),
	}
}

// Claim returns the mapped Value for name, computing it on first access
// via the registry's mapper (issuer override or built-in default) and
// caching the result. ok is false if the claim is absent.
func (c *Content) Claim(name string) (claims.Value, bool) {
	if c == nil {
		return claims.Value{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.mapped[name]; ok {
		return v, true
	}
	rawVal, ok := c.raw[name]
	if !ok {
		return claims.Value{}, false
	}
	v, err := c.mappers.Mapper(name)(rawVal)
	if err != nil {
		return claims.Value{}, false
	}
	c.mapped[name] = v
	return v, true
}

// HasClaim reports whether the raw payload carried name, regardless of
// whether it has been mapped yet.
func (c *Content) HasClaim(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.raw[name]
	return ok
}
