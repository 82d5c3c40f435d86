package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims *models.JwtCustomClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runJWTMiddleware(secret, authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, JWTAuthMiddleware(secret)(next)(c)
}

func TestJWTAuthMiddlewareAcceptsConfiguredSecret(t *testing.T) {
	token := signToken(t, "configured-secret", &models.JwtCustomClaims{
		UserID: 7,
		Role:   models.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	c, err := runJWTMiddleware("configured-secret", "Bearer "+token)
	require.NoError(t, err)

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)
}

func TestJWTAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", &models.JwtCustomClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := runJWTMiddleware("configured-secret", "Bearer "+token)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	_, err := runJWTMiddleware("configured-secret", "")
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
