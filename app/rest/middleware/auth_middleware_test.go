package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-gateway/app/domain"
	"auth-gateway/app/mocks"
	"auth-gateway/app/utils/logger"
)

func newTestPrincipal(t *testing.T) (*domain.User, *domain.Tenant) {
	t.Helper()

	tenant, err := domain.NewTenant("Finance Department", "finance", "microsoft")
	require.NoError(t, err)

	user, err := domain.NewUserFromClaims(&domain.Claims{
		Subject: "subject-123",
		Email:   "jordan@finance.example.com",
	}, tenant)
	require.NoError(t, err)

	return user, tenant
}

func runWithAuth(t *testing.T, authHeader string, uc *mocks.MockAuthUsecase) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	mw := NewAuthMiddleware(uc, log)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw.RequireAuth()(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, reached
}

func TestRequireAuth_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user, tenant := newTestPrincipal(t)
	uc := mocks.NewMockAuthUsecase(ctrl)
	uc.EXPECT().
		CurrentUser(gomock.Any(), "valid-token").
		Return(user, tenant, nil)

	log, err := logger.New("error")
	require.NoError(t, err)

	mw := NewAuthMiddleware(uc, log)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw.RequireAuth()(func(c echo.Context) error {
		assert.Equal(t, user.ID, UserFromContext(c).ID)
		assert.Equal(t, tenant.ID, TenantFromContext(c).ID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockAuthUsecase(ctrl)

	rec, reached := runWithAuth(t, "", uc)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockAuthUsecase(ctrl)

	rec, reached := runWithAuth(t, "Basic dXNlcjpwYXNz", uc)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockAuthUsecase(ctrl)
	uc.EXPECT().
		CurrentUser(gomock.Any(), "bad-token").
		Return(nil, nil, domain.ErrInvalidToken)

	rec, reached := runWithAuth(t, "Bearer bad-token", uc)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_InactiveUserIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockAuthUsecase(ctrl)
	uc.EXPECT().
		CurrentUser(gomock.Any(), "inactive-token").
		Return(nil, nil, domain.ErrUserInactive)

	rec, reached := runWithAuth(t, "Bearer inactive-token", uc)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_KeySetOutageIsServiceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockAuthUsecase(ctrl)
	uc.EXPECT().
		CurrentUser(gomock.Any(), "any-token").
		Return(nil, nil, domain.ErrKeySetUnavailable)

	rec, reached := runWithAuth(t, "Bearer any-token", uc)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, reached)
}
