package jwtvalidator

import (
	"strings"

	"github.com/openjwt/jwtvalidator/core/claims"
	"github.com/openjwt/jwtvalidator/core/pipeline"
)

// AccessTokenContent is the typed result of CreateAccessToken.
type AccessTokenContent struct {
	*pipeline.Content
}

// IDTokenContent is the typed result of CreateIDToken.
type IDTokenContent struct {
	*pipeline.Content
}

// RefreshTokenContent is the typed result of CreateRefreshToken. Opaque
// is true when the raw value wasn't JWT-structured at all, in which case
// only Raw is meaningful.
type RefreshTokenContent struct {
	*pipeline.Content
}

// Scopes returns the token's granted scopes, read from "scope" or, failing
// that, "scp". The default registry maps both as space-delimited strings;
// an "scp" given as a JSON array does not map and yields no scopes.
func (c AccessTokenContent) Scopes() []string {
	return stringListClaim(c.Content, "scope", "scp")
}

// Roles returns the token's granted roles, read from a top-level "roles"
// claim or, failing that, Keycloak's nested "realm_access.roles".
func (c AccessTokenContent) Roles() []string {
	return stringListClaim(c.Content, "roles", "realm_access")
}

// Groups returns the token's group memberships, read from a top-level
// "groups" claim.
func (c AccessTokenContent) Groups() []string {
	return stringListClaim(c.Content, "groups")
}

// MissingScopes returns the subset of required not present in Scopes().
func (c AccessTokenContent) MissingScopes(required []string) []string {
	return setDifference(required, c.Scopes())
}

// MissingRoles returns the subset of required not present in Roles().
func (c AccessTokenContent) MissingRoles(required []string) []string {
	return setDifference(required, c.Roles())
}

// MissingGroups returns the subset of required not present in Groups().
func (c AccessTokenContent) MissingGroups(required []string) []string {
	return setDifference(required, c.Groups())
}

// stringListClaim reads the first claim name (in order) that's present
// and coerces its mapped Value to a string slice.
func stringListClaim(c *pipeline.Content, names ...string) []string {
	for _, name := range names {
		v, ok := c.Claim(name)
		if !ok {
			continue
		}
		switch v.Kind {
		case claims.KindStringList:
			return v.StringList
		case claims.KindString:
			return strings.Fields(v.String)
		default:
			return nil
		}
	}
	return nil
}

// setDifference returns the elements of required absent from have.
func setDifference(required, have []string) []string {
	if len(required) == 0 {
		return nil
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, h := range have {
		haveSet[h] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := haveSet[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}
