package bearer_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openjwt/jwtvalidator/contrib/bearer"
)

func request(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func TestFromRequest_BearerPrefix(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", bearer.FromRequest(r))
}

func TestFromRequest_NoPrefixTreatedAsRawToken(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.Header.Set("Authorization", "abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", bearer.FromRequest(r))
}

func TestFromRequest_EmptyHeader(t *testing.T) {
	t.Parallel()
	assert.Empty(t, bearer.FromRequest(request(t)))
}

func TestFromRequestWithScheme_MismatchedSchemeIsAbsent(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, bearer.FromRequestWithScheme(r, "DPoP"))
}

func TestFromRequestWithScheme_MatchingScheme(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.Header.Set("Authorization", "DPoP xyz")
	assert.Equal(t, "xyz", bearer.FromRequestWithScheme(r, "DPoP"))
}

func TestFromHeader(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.Header.Set("X-Api-Key", "secret")
	assert.Equal(t, "secret", bearer.FromHeader("X-Api-Key")(r))
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?access_token=qtok", nil)
	assert.Equal(t, "qtok", bearer.FromQuery("access_token")(r))
}

func TestFromCookie(t *testing.T) {
	t.Parallel()

	r := request(t)
	r.AddCookie(&http.Cookie{Name: "session", Value: "ctok"})
	assert.Equal(t, "ctok", bearer.FromCookie("session")(r))
}

func TestFromCookie_Missing(t *testing.T) {
	t.Parallel()
	assert.Empty(t, bearer.FromCookie("session")(request(t)))
}

func TestFromMultiple_FirstNonEmptyWins(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?access_token=qtok", nil)
	extract := bearer.FromMultiple(bearer.FromRequest, bearer.FromQuery("access_token"))
	assert.Equal(t, "qtok", extract(r))
}

func TestFromMultiple_PrefersEarlierExtractor(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?access_token=qtok", nil)
	r.Header.Set("Authorization", "Bearer htok")
	extract := bearer.FromMultiple(bearer.FromRequest, bearer.FromQuery("access_token"))
	assert.Equal(t, "htok", extract(r))
}

func TestFromMultiple_NoneMatch(t *testing.T) {
	t.Parallel()

	extract := bearer.FromMultiple(bearer.FromRequest, bearer.FromQuery("access_token"))
	assert.Empty(t, extract(request(t)))
}
