package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/rest/middleware"
	apperrors "auth-gateway/app/utils/errors"
	"auth-gateway/app/utils/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase   port.AuthUsecase
	tenantUsecase port.TenantUsecase
	validator     *validator.Validator
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, tenantUsecase port.TenantUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		tenantUsecase: tenantUsecase,
		validator:     validator.New(),
		logger:        logger,
	}
}

type identifyTenantRequest struct {
	Department string `json:"department" validate:"required,department"`
}

type identifyTenantResponse struct {
	Found      bool   `json:"tenant_found"`
	TenantName string `json:"tenant_name,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
	AuthURL    string `json:"authorization_url,omitempty"`
}

type callbackRequest struct {
	Code       string `json:"code" validate:"required"`
	Department string `json:"department,omitempty" validate:"omitempty,department"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type logoutResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *domain.User   `json:"user"`
	Tenant       *domain.Tenant `json:"tenant"`
}

type profileResponse struct {
	User   *domain.User   `json:"user"`
	Tenant *domain.Tenant `json:"tenant"`
}

// IdentifyTenant resolves a department code to a tenant and its provider
// authorization URL. An unknown department is a normal miss, reported as
// found=false with 200, so the login page can show a friendly message.
func (h *AuthHandler) IdentifyTenant(c echo.Context) error {
	var req identifyTenantRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	result, err := h.tenantUsecase.IdentifyTenant(c.Request().Context(), req.Department)
	if err != nil {
		h.logger.Error("tenant identification failed", "department", req.Department, "error", err)
		return respondError(c, err)
	}

	resp := identifyTenantResponse{Found: result.Found}
	if result.Found {
		resp.TenantName = result.Tenant.Name
		resp.TenantID = result.Tenant.ID.String()
		resp.AuthURL = result.AuthURL
	}
	return c.JSON(http.StatusOK, resp)
}

// Callback completes the authorization-code flow
func (h *AuthHandler) Callback(c echo.Context) error {
	var req callbackRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	session, err := h.authUsecase.HandleCallback(c.Request().Context(), req.Code, req.Department)
	if err != nil {
		h.logger.Error("callback failed", "error", err, "ip", c.RealIP())
		return respondError(c, err)
	}

	h.logger.Info("login completed",
		"user_id", session.User.ID,
		"tenant_id", session.Tenant.ID,
		"ip", c.RealIP())

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Refresh exchanges a refresh token for fresh tokens
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	session, err := h.authUsecase.RefreshSession(c.Request().Context(), req.RefreshToken)
	if err != nil {
		h.logger.Warn("session refresh failed", "error", err, "ip", c.RealIP())
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout revokes the refresh token at the provider
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := h.authUsecase.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		h.logger.Warn("logout failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, logoutResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated user's profile and tenant. The auth
// middleware has already resolved both.
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.UserFromContext(c)
	tenant := middleware.TenantFromContext(c)
	if user == nil || tenant == nil {
		return respondError(c, domain.ErrUnauthorized)
	}

	return c.JSON(http.StatusOK, profileResponse{
		User:   user,
		Tenant: tenant,
	})
}

func toSessionResponse(session *domain.AuthenticatedSession) sessionResponse {
	return sessionResponse{
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
		TokenType:    session.Tokens.TokenType,
		ExpiresIn:    session.Tokens.ExpiresIn,
		User:         session.User,
		Tenant:       session.Tenant,
	}
}
