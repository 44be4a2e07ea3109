package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodlink/bloodlink-tn/internal/utils"
)

const testSecret = "unit-test-secret"

// probe records what JWTAuth put into the context.
func probe(gotID *uint64, gotRole *string) echo.HandlerFunc {
	return func(c echo.Context) error {
		*gotID = UserID(c)
		*gotRole = Role(c)
		return c.NoContent(http.StatusOK)
	}
}

func doRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, uint64, string) {
	t.Helper()
	e := echo.New()
	var gotID uint64
	var gotRole string
	e.GET("/probe", probe(&gotID, &gotRole), JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, gotID, gotRole
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, _ := doRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is missing")
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _, _ := doRequest(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is invalid")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("another-secret", 7, "donor", 15)
	require.NoError(t, err)

	rec, _, _ := doRequest(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "donor", 15)
	require.NoError(t, err)

	rec, gotID, gotRole := doRequest(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, "donor", gotRole)
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, uint64(0), UserID(c))
	assert.Equal(t, "", Role(c))
}
