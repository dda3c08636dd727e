package auth

import (
	"strings"

	"github.com/jamolstroy/admin-api/internal/http/response"
	"github.com/jamolstroy/admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

// WebsiteLoginRequestBody carries the browser identity asking for a
// Telegram approved login.
type WebsiteLoginRequestBody struct {
	ClientID string `json:"client_id" binding:"required"`
}

var loginRequestErrorRules = []mappedHandlerError{
	{target: service.ErrTelegramLoginDisabled, code: response.CodeBadRequest, key: "error.login_disabled"},
}

// RequestWebsiteLogin creates a pending login session and returns the
// Telegram deep link the browser should open.
func (h *Handler) RequestWebsiteLogin(c *gin.Context) {
	var req WebsiteLoginRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.AuthService.RequestWebsiteLogin(strings.TrimSpace(req.ClientID))
	if err != nil {
		respondWithMappedError(c, err, loginRequestErrorRules, response.CodeInternal, "error.login_request_failed")
		return
	}

	response.Success(c, result)
}

var loginStatusErrorRules = []mappedHandlerError{
	{target: service.ErrLoginSessionNotFound, code: response.CodeNotFound, key: "error.login_not_found"},
}

// WebsiteLoginStatus reports the state of a login session. The browser
// polls this until the session reaches a terminal state.
func (h *Handler) WebsiteLoginStatus(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		respondError(c, response.CodeBadRequest, "error.login_token_missing", nil)
		return
	}

	result, err := h.AuthService.LoginStatus(c.Request.Context(), token)
	if err != nil {
		respondWithMappedError(c, err, loginStatusErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, result)
}

// TelegramWebAppLoginRequest carries the raw init data of a Telegram
// Mini App session.
type TelegramWebAppLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

var webAppLoginErrorRules = []mappedHandlerError{
	{target: service.ErrTelegramLoginDisabled, code: response.CodeBadRequest, key: "error.login_disabled"},
	{target: service.ErrTelegramAuthReplayed, code: response.CodeUnauthorized, key: "error.telegram_auth_failed"},
	{target: service.ErrTelegramAuthFailed, code: response.CodeUnauthorized, key: "error.telegram_auth_failed"},
	{target: service.ErrNotAdmin, code: response.CodeForbidden, key: "error.forbidden"},
}

// TelegramWebAppLogin signs an admin in directly from a verified
// Telegram Mini App payload.
func (h *Handler) TelegramWebAppLogin(c *gin.Context) {
	var req TelegramWebAppLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.LoginWithWebApp(c.Request.Context(), req.InitData)
	if err != nil {
		respondWithMappedError(c, err, webAppLoginErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, gin.H{
		"user":             user,
		"token":            token,
		"token_expires_at": expiresAt,
	})
}
