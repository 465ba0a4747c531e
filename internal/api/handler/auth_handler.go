package handler

import (
	"errors"

	"remo-go/internal/api/dto"
	"remo-go/internal/api/middleware"
	"remo-go/internal/api/response"
	"remo-go/internal/service"
	"remo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin POST /api/v1/auth/google
// 用前端拿到的 Google ID Token 换取本地会话令牌
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tokenData, err := h.authService.GoogleLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			response.Unauthorized(c, "invalid google id token")
			return
		}
		logger.Error("Google login failed", zap.Error(err))
		response.InternalError(c, "login failed, please try again later")
		return
	}

	response.OK(c, "login successful", tokenData)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	userInfo, err := h.authService.GetCurrentUser(identity)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationRequired) || errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, err.Error())
			return
		}
		logger.Error("Get current user failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
		return
	}

	response.OK(c, "user retrieved", userInfo)
}
