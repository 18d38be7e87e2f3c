package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/pkg/service"
	"hr-system/pkg/utils"
)

func newTestServer(t *testing.T) (*echo.Echo, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, authz.NewGatekeeper(nil), zap.NewNop())

	e := echo.New()
	g := e.Group("", mw.Auth)
	g.GET("/assets", func(c echo.Context) error {
		claims, err := utils.GetClaimsFromContext(c.Request().Context())
		require.NoError(t, err)
		return c.String(http.StatusOK, claims.Role)
	}, mw.RequirePermission(authz.AssetsView))
	g.POST("/assets", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, mw.RequirePermission(authz.AssetsCreate))
	return e, jwtSvc
}

func do(e *echo.Echo, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingAndMalformedHeader(t *testing.T) {
	e, _ := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/assets", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/assets", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/assets", "Bearer not-a-jwt").Code)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	e, jwtSvc := newTestServer(t)
	pair, err := jwtSvc.GenerateTokens(uuid.New(), authz.RoleHR)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/assets", "Bearer "+pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPermissionGate(t *testing.T) {
	e, jwtSvc := newTestServer(t)
	pair, err := jwtSvc.GenerateTokens(uuid.New(), authz.RoleEmployee)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/assets", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, authz.RoleEmployee, rec.Body.String())

	rec = do(e, http.MethodPost, "/assets", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
