package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reservation-system/pkg/contextkeys"
	"reservation-system/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthTestSetup(t *testing.T) (*AuthMiddleware, service.JWTService, *echo.Echo) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	return NewAuthMiddleware(jwtSvc, zap.NewNop()), jwtSvc, echo.New()
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func performRequest(e *echo.Echo, handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestAuthInjectsClaimsIntoContext(t *testing.T) {
	mw, jwtSvc, e := newAuthTestSetup(t)

	token, err := jwtSvc.GenerateToken(7, "maria.santos", "staff")
	require.NoError(t, err)

	var gotUserID uint64
	var gotRole string
	handler := mw.Auth(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotUserID, _ = ctx.Value(contextkeys.UserIDKey).(uint64)
		gotRole, _ = ctx.Value(contextkeys.UserRoleKey).(string)
		return okHandler(c)
	})

	rec := performRequest(e, handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotUserID)
	assert.Equal(t, "staff", gotRole)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	mw, _, e := newAuthTestSetup(t)

	rec := performRequest(e, mw.Auth(okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	mw, jwtSvc, e := newAuthTestSetup(t)
	token, _ := jwtSvc.GenerateToken(7, "maria.santos", "staff")

	for _, header := range []string{"Token " + token, token, "Bearer"} {
		rec := performRequest(e, mw.Auth(okHandler), header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	mw, _, e := newAuthTestSetup(t)
	forger := service.NewJWTService("other-secret", time.Hour, zap.NewNop())
	token, _ := forger.GenerateToken(7, "maria.santos", "superadmin")

	rec := performRequest(e, mw.Auth(okHandler), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRestrictToAllowsListedRole(t *testing.T) {
	mw, jwtSvc, e := newAuthTestSetup(t)
	token, _ := jwtSvc.GenerateToken(7, "maria.santos", "staff")

	handler := mw.Auth(mw.RestrictTo("staff", "superadmin")(okHandler))
	rec := performRequest(e, handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRestrictToRejectsOtherRole(t *testing.T) {
	mw, jwtSvc, e := newAuthTestSetup(t)
	token, _ := jwtSvc.GenerateToken(7, "juan.delacruz", "borrower")

	handler := mw.Auth(mw.RestrictTo("superadmin")(okHandler))
	rec := performRequest(e, handler, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
