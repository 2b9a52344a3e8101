package jwtvalidator_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtvalidator "github.com/openjwt/jwtvalidator"
	"github.com/openjwt/jwtvalidator/core/events"
)

type testIssuer struct {
	key       *rsa.PrivateKey
	issuerURL string
}

func newTestIssuer(t *testing.T) *testIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &testIssuer{key: key, issuerURL: "https://issuer.example.test"}
}

func (ti *testIssuer) jwksDocument(t *testing.T) []byte {
	t.Helper()
	n := base64.RawURLEncoding.EncodeToString(ti.key.PublicKey.N.Bytes())
	e := base64.RawURLEncoding.EncodeToString([]byte{1, 0, 1})
	doc, err := json.Marshal(map[string]any{
		"keys": []map[string]any{
			{"kty": "RSA", "kid": "kid-1", "alg": "RS256", "n": n, "e": e},
		},
	})
	require.NoError(t, err)
	return doc
}

func (ti *testIssuer) sign(t *testing.T, header, payload map[string]any) string {
	t.Helper()
	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	digest := sha256.Sum256([]byte(signingInput))
	sig, err := rsa.SignPKCS1v15(rand.Reader, ti.key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func defaultAccessClaims(issuer string) map[string]any {
	return map[string]any{
		"iss":   issuer,
		"sub":   "user-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"aud":   "api://default",
		"scope": "read write",
	}
}

func TestValidator_CreateAccessToken_HappyPath(t *testing.T) {
	t.Parallel()

	ti := newTestIssuer(t)
	issuer, err := jwtvalidator.NewIssuer(
		jwtvalidator.WithIssuerIdentifier(ti.issuerURL),
		jwtvalidator.WithExpectedAudience("api://default"),
		jwtvalidator.WithInMemoryJWKS(ti.jwksDocument(t)),
	)
	require.NoError(t, err)

	validator := jwtvalidator.NewValidator(context.Background(), []*jwtvalidator.IssuerConfig{issuer})
	defer validator.Close()

	raw := ti.sign(t, map[string]any{"alg": "RS256", "kid": "kid-1"}, defaultAccessClaims(ti.issuerURL))
	content, err := validator.CreateAccessToken(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write"}, content.Scopes())
	assert.Empty(t, content.MissingScopes([]string{"read", "write"}))
	assert.Equal(t, []string{"admin"}, content.MissingScopes([]string{"read", "admin"}))
}

func TestValidator_CreateAccessToken_ReturnsValidationError(t *testing.T) {
	t.Parallel()

	ti := newTestIssuer(t)
	issuer, err := jwtvalidator.NewIssuer(
		jwtvalidator.WithIssuerIdentifier(ti.issuerURL),
		jwtvalidator.WithInMemoryJWKS(ti.jwksDocument(t)),
	)
	require.NoError(t, err)

	validator := jwtvalidator.NewValidator(context.Background(), []*jwtvalidator.IssuerConfig{issuer})
	defer validator.Close()

	claimsMap := defaultAccessClaims(ti.issuerURL)
	claimsMap["exp"] = time.Now().Add(-time.Hour).Unix()
	raw := ti.sign(t, map[string]any{"alg": "RS256", "kid": "kid-1"}, claimsMap)

	_, err = validator.CreateAccessToken(context.Background(), raw)
	require.Error(t, err)

	var ve *jwtvalidator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, events.TokenExpired, ve.EventType)
	assert.Equal(t, events.CategorySemantic, ve.Category)
}

func TestValidator_CreateRefreshToken_OpaqueValue(t *testing.T) {
	t.Parallel()

	ti := newTestIssuer(t)
	issuer, err := jwtvalidator.NewIssuer(
		jwtvalidator.WithIssuerIdentifier(ti.issuerURL),
		jwtvalidator.WithInMemoryJWKS(ti.jwksDocument(t)),
	)
	require.NoError(t, err)

	validator := jwtvalidator.NewValidator(context.Background(), []*jwtvalidator.IssuerConfig{issuer})
	defer validator.Close()

	content, err := validator.CreateRefreshToken(context.Background(), "opaque-refresh-value")
	require.NoError(t, err)
	assert.Equal(t, "opaque-refresh-value", content.Raw)
}

func TestValidator_CreateIDToken_MissingAudienceClaim(t *testing.T) {
	t.Parallel()

	ti := newTestIssuer(t)
	issuer, err := jwtvalidator.NewIssuer(
		jwtvalidator.WithIssuerIdentifier(ti.issuerURL),
		jwtvalidator.WithInMemoryJWKS(ti.jwksDocument(t)),
	)
	require.NoError(t, err)

	validator := jwtvalidator.NewValidator(context.Background(), []*jwtvalidator.IssuerConfig{issuer})
	defer validator.Close()

	claimsMap := map[string]any{
		"iss": ti.issuerURL,
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw := ti.sign(t, map[string]any{"alg": "RS256", "kid": "kid-1"}, claimsMap)

	_, err = validator.CreateIDToken(context.Background(), raw)
	require.Error(t, err)

	var ve *jwtvalidator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, events.MissingClaim, ve.EventType)
}
