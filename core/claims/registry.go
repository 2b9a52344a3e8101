package claims

import "encoding/json"

// Registry resolves a claim name to a Mapper, falling back to the
// built-in default set. Issuer-configured overrides take precedence.
type Registry struct {
	overrides map[string]Mapper
}

// NewRegistry builds a Registry with the given issuer-configured
// overrides layered over the built-in defaults.
func NewRegistry(overrides map[string]Mapper) *Registry {
	return &Registry{overrides: overrides}
}

// defaultMappers covers the claim names the validation pipeline reads
// directly; any claim name not listed here falls back to Raw passthrough.
var defaultMappers = map[string]Mapper{
	"sub":          IdentityString,
	"iss":          IdentityString,
	"azp":          IdentityString,
	"client_id":    IdentityString,
	"scope":        StringSplitter(" "),
	"scp":          StringSplitter(" "),
	"aud":          JSONCollection,
	"exp":          Instant,
	"iat":          Instant,
	"nbf":          Instant,
	"roles":        KeycloakGroups,
	"groups":       KeycloakGroups,
	"realm_access": KeycloakRoles,
}

// Mapper returns the mapper for name: an issuer override if configured,
// else the built-in default, else a Raw-passthrough mapper.
func (r *Registry) Mapper(name string) Mapper {
	if r != nil {
		if m, ok := r.overrides[name]; ok {
			return m
		}
	}
	if m, ok := defaultMappers[name]; ok {
		return m
	}
	return rawPassthrough
}

func rawPassthrough(raw json.RawMessage) (Value, error) {
	return Value{Kind: KindRaw, Raw: raw}, nil
}
