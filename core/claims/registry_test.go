package claims_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/claims"
)

func TestRegistry_FallsBackToDefault(t *testing.T) {
	t.Parallel()
	r := claims.NewRegistry(nil)
	v, err := r.Mapper("scope")(json.RawMessage(`"a b"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.StringList)
}

func TestRegistry_OverrideTakesPrecedence(t *testing.T) {
	t.Parallel()
	r := claims.NewRegistry(map[string]claims.Mapper{
		"scope": claims.StringSplitter(","),
	})
	v, err := r.Mapper("scope")(json.RawMessage(`"a,b"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.StringList)
}

func TestRegistry_UnknownClaimFallsBackToRaw(t *testing.T) {
	t.Parallel()
	r := claims.NewRegistry(nil)
	v, err := r.Mapper("custom_claim")(json.RawMessage(`{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, claims.KindRaw, v.Kind)
}

func TestRegistry_NilReceiverUsesDefaults(t *testing.T) {
	t.Parallel()
	var r *claims.Registry
	v, err := r.Mapper("sub")(json.RawMessage(`"user-1"`))
	require.NoError(t, err)
	assert.Equal(t, "user-1", v.String)
}
