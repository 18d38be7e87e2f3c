package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/internal/dto"
	"hr-system/pkg/middleware"
	"hr-system/pkg/service"
	"hr-system/pkg/types"
	"hr-system/pkg/utils"
	"hr-system/pkg/validation"
)

type stubRoleService struct {
	created int
}

func (s *stubRoleService) GetRoles(context.Context, types.Filter) ([]dto.RoleDTO, uint64, error) {
	return []dto.RoleDTO{{ID: uuid.New(), Name: "hr"}}, 1, nil
}

func (s *stubRoleService) FindRole(_ context.Context, id uuid.UUID) (*dto.RoleDTO, error) {
	return &dto.RoleDTO{ID: id, Name: "hr"}, nil
}

func (s *stubRoleService) CreateRole(_ context.Context, payload dto.CreateDictionaryDTO) (*dto.RoleDTO, error) {
	s.created++
	return &dto.RoleDTO{ID: uuid.New(), Name: payload.Name}, nil
}

func (s *stubRoleService) UpdateRole(_ context.Context, id uuid.UUID, _ dto.UpdateDictionaryDTO) (*dto.RoleDTO, error) {
	return &dto.RoleDTO{ID: id}, nil
}

func (s *stubRoleService) DeleteRole(context.Context, uuid.UUID) error { return nil }

// RouterTestSuite поднимает маршруты без базы: живые только роли, остальное не вызывается.
type RouterTestSuite struct {
	suite.Suite
	Echo        *echo.Echo
	JWT         service.JWTService
	RoleService *stubRoleService
}

func (s *RouterTestSuite) SetupTest() {
	logger := zap.NewNop()
	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = utils.HTTPErrorHandler(logger)

	s.JWT = service.NewJWTService("test-secret", time.Minute, time.Hour, logger)
	s.RoleService = &stubRoleService{}
	authMW := middleware.NewAuthMiddleware(s.JWT, authz.NewGatekeeper(nil), logger)

	Register(e, Controllers{
		Role: controllers.NewRoleController(s.RoleService, logger),
	}, authMW)
	s.Echo = e
}

func (s *RouterTestSuite) token(role string, refresh bool) string {
	pair, err := s.JWT.GenerateTokens(uuid.New(), role)
	s.Require().NoError(err)
	if refresh {
		return pair.RefreshToken
	}
	return pair.AccessToken
}

func (s *RouterTestSuite) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestRequiresToken() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/roles", "", "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/roles", "garbage", "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/roles", s.token(authz.RoleAdmin, true), "").Code)
}

func (s *RouterTestSuite) TestEmployeeIsReadOnly() {
	employee := s.token(authz.RoleEmployee, false)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/roles", employee, "").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/roles", employee, `{"name":"qa"}`).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/roles/"+uuid.NewString(), employee, "").Code)
	s.Zero(s.RoleService.created)
}

func (s *RouterTestSuite) TestHRManagesDictionaries() {
	rec := s.do(http.MethodPost, "/api/roles", s.token(authz.RoleHR, false), `{"name":"qa"}`)
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal(1, s.RoleService.created)

	rec = s.do(http.MethodPatch, "/api/roles/"+uuid.NewString(), s.token(authz.RoleAdmin, false), `{"description":null}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestUnknownRoleIsForbidden() {
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/roles", s.token("intern", false), "").Code)
}

func (s *RouterTestSuite) TestRouteTable() {
	registered := make(map[string]bool)
	for _, r := range s.Echo.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"GET /api/auth/me",
		"GET /api/ws",
		"PATCH /api/users/:id",
		"POST /api/users/:id/attachments",
		"GET /api/assets/export",
		"POST /api/assets/import",
		"GET /api/assets/:id/attachments",
		"GET /api/asset-tracking/export",
		"PATCH /api/asset-tracking/:id",
		"DELETE /api/attachments",
		"DELETE /api/phones/:id",
		"GET /api/titles",
		"GET /api/departments/:id",
	} {
		s.True(registered[want], want)
	}
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
