package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-gateway/app/domain"
	"auth-gateway/app/mocks"
	"auth-gateway/app/utils/logger"
)

func newTestAuthHandler(t *testing.T, ctrl *gomock.Controller) (*AuthHandler, *mocks.MockAuthUsecase, *mocks.MockTenantUsecase) {
	t.Helper()

	authUC := mocks.NewMockAuthUsecase(ctrl)
	tenantUC := mocks.NewMockTenantUsecase(ctrl)

	log, err := logger.New("error")
	require.NoError(t, err)

	return NewAuthHandler(authUC, tenantUC, log), authUC, tenantUC
}

func doJSON(e *echo.Echo, method, path, body string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func testTenant(t *testing.T) *domain.Tenant {
	t.Helper()
	tenant, err := domain.NewTenant("Finance Department", "finance", "microsoft")
	require.NoError(t, err)
	return tenant
}

func testSession(t *testing.T) *domain.AuthenticatedSession {
	t.Helper()

	tenant := testTenant(t)
	user, err := domain.NewUserFromClaims(&domain.Claims{
		Subject:    "subject-123",
		Email:      "jordan@finance.example.com",
		GivenName:  "Jordan",
		FamilyName: "Lee",
		Department: "finance",
		ExpiresAt:  time.Now().Add(5 * time.Minute),
	}, tenant)
	require.NoError(t, err)

	return &domain.AuthenticatedSession{
		Tokens: &domain.TokenSet{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			TokenType:    "Bearer",
			ExpiresIn:    300,
		},
		User:   user,
		Tenant: tenant,
	}
}

func TestAuthHandler_IdentifyTenant(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(*mocks.MockTenantUsecase)
		wantStatus int
		checkBody  func(*testing.T, map[string]interface{})
	}{
		{
			name: "known department returns tenant and auth URL",
			body: `{"department":"finance"}`,
			setupMocks: func(uc *mocks.MockTenantUsecase) {
				uc.EXPECT().
					IdentifyTenant(gomock.Any(), "finance").
					Return(&domain.TenantIdentification{
						Found:   true,
						Tenant:  testTenant(t),
						AuthURL: "http://localhost:8080/realms/acme/protocol/openid-connect/auth?kc_idp_hint=microsoft",
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["tenant_found"])
				assert.Contains(t, body["authorization_url"], "kc_idp_hint=microsoft")
				assert.Equal(t, "Finance Department", body["tenant_name"])
				assert.NotEmpty(t, body["tenant_id"])
			},
		},
		{
			name: "unknown department is a 200 miss",
			body: `{"department":"ghost"}`,
			setupMocks: func(uc *mocks.MockTenantUsecase) {
				uc.EXPECT().
					IdentifyTenant(gomock.Any(), "ghost").
					Return(&domain.TenantIdentification{Found: false}, nil)
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["tenant_found"])
				assert.NotContains(t, body, "tenant_name")
				assert.NotContains(t, body, "tenant_id")
				assert.NotContains(t, body, "authorization_url")
			},
		},
		{
			name:       "missing department fails validation",
			body:       `{}`,
			setupMocks: func(uc *mocks.MockTenantUsecase) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "department with invalid characters fails validation",
			body:       `{"department":"Finance Dept!"}`,
			setupMocks: func(uc *mocks.MockTenantUsecase) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, _, tenantUC := newTestAuthHandler(t, ctrl)
			tt.setupMocks(tenantUC)

			rec := doJSON(echo.New(), http.MethodPost, "/v1/auth/identify-tenant", tt.body, handler.IdentifyTenant)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.checkBody != nil {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.checkBody(t, body)
			}
		})
	}
}

func TestAuthHandler_Callback(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(*mocks.MockAuthUsecase)
		wantStatus int
		wantCode   string
	}{
		{
			name: "successful callback returns tokens and profile",
			body: `{"code":"auth-code","department":"finance"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "auth-code", "finance").
					Return(testSession(t), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing code fails validation",
			body:       `{"department":"finance"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "stale code maps to upstream error",
			body: `{"code":"stale-code"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "stale-code", "").
					Return(nil, domain.NewUpstreamError("token exchange", 400, `{"error":"invalid_grant"}`))
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_AUTH_ERROR",
		},
		{
			name: "unknown tenant maps to 404",
			body: `{"code":"auth-code","department":"ghost"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "auth-code", "ghost").
					Return(nil, domain.ErrTenantNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "TENANT_NOT_FOUND",
		},
		{
			name: "incomplete claims map to 400",
			body: `{"code":"auth-code"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "auth-code", "").
					Return(nil, domain.ErrIncompleteClaims)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INCOMPLETE_CLAIMS",
		},
		{
			name: "inactive user maps to 403",
			body: `{"code":"auth-code"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "auth-code", "").
					Return(nil, domain.ErrUserInactive)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "USER_INACTIVE",
		},
		{
			name: "key set outage maps to 503",
			body: `{"code":"auth-code"}`,
			setupMocks: func(uc *mocks.MockAuthUsecase) {
				uc.EXPECT().
					HandleCallback(gomock.Any(), "auth-code", "").
					Return(nil, domain.ErrKeySetUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "KEY_SET_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, authUC, _ := newTestAuthHandler(t, ctrl)
			tt.setupMocks(authUC)

			rec := doJSON(echo.New(), http.MethodPost, "/v1/auth/callback", tt.body, handler.Callback)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				var body ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
			}

			if tt.wantStatus == http.StatusOK {
				var body sessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "access-token", body.AccessToken)
				assert.NotNil(t, body.User)
				assert.NotNil(t, body.Tenant)
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, authUC, _ := newTestAuthHandler(t, ctrl)
		authUC.EXPECT().
			RefreshSession(gomock.Any(), "refresh-token").
			Return(testSession(t), nil)

		rec := doJSON(echo.New(), http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"refresh-token"}`, handler.Refresh)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown subject is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, authUC, _ := newTestAuthHandler(t, ctrl)
		authUC.EXPECT().
			RefreshSession(gomock.Any(), "refresh-token").
			Return(nil, domain.ErrUserNotFound)

		rec := doJSON(echo.New(), http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"refresh-token"}`, handler.Refresh)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, authUC, _ := newTestAuthHandler(t, ctrl)
	authUC.EXPECT().
		Logout(gomock.Any(), "refresh-token").
		Return(nil)

	rec := doJSON(echo.New(), http.MethodPost, "/v1/auth/logout", `{"refresh_token":"refresh-token"}`, handler.Logout)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Logged out successfully", body["message"])
}
