package delivery

import (
	"encoding/json"
	"net/http"
	"strings"

	authdto "rentit-backend/internal/auth/dto"
	"rentit-backend/internal/auth/usecase"
	"rentit-backend/pkg/apperror"
	"rentit-backend/pkg/response"
	"rentit-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type trimmable interface {
	Trim()
}

// bindTrimmed decodes the JSON body and trims it before the binding rules
// run, so length limits apply to the trimmed values.
func bindTrimmed(c *gin.Context, req trimmable) error {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		return err
	}
	req.Trim()
	return binding.Validator.ValidateStruct(req)
}

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	tokens      token.Service
	cookies     *CookieHelper
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, tokens token.Service, cookies *CookieHelper) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		tokens:      tokens,
		cookies:     cookies,
	}
}

// Register creates an account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := bindTrimmed(c, &req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, user, "User registered successfully")
}

// Login authenticates and sets both auth cookies
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := bindTrimmed(c, &req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.SetAuthCookies(c, resp.AccessToken, resp.RefreshToken, h.tokens.AccessExpiry(), h.tokens.RefreshExpiry())
	response.JSON(c, http.StatusOK, resp, "User logged in successfully")
}

// Logout revokes the stored refresh token and clears the cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), user.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.ClearAuthCookies(c)
	response.JSON(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken rotates the token pair. The cookie wins over the body.
// POST /api/v1/auth/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := cookieValue(c, RefreshTokenCookie)
	if refreshToken == "" {
		var req authdto.RefreshTokenRequest
		// An empty or non-JSON body just means no token was sent.
		_ = c.ShouldBindJSON(&req)
		refreshToken = strings.TrimSpace(req.RefreshToken)
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.SetAuthCookies(c, resp.AccessToken, resp.RefreshToken, h.tokens.AccessExpiry(), h.tokens.RefreshExpiry())
	response.JSON(c, http.StatusOK, resp, "Access token refreshed")
}

// GetCurrentUser returns the authenticated user
// GET /api/v1/auth/current-user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	response.JSON(c, http.StatusOK, user, "Current user fetched successfully")
}

// ChangePassword replaces the password of the authenticated user
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	var req authdto.ChangePasswordRequest
	if err := bindTrimmed(c, &req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
}
