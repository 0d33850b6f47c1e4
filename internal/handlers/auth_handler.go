package handlers

import (
	"net/http"
	"net/url"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes mounts /auth under the API group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.GET("/callback", h.OptionalAuth(), h.Callback)
		authGroup.GET("/me", h.RequireAuth(), h.Me)
	}
}

// RegisterPageRoutes mounts the browser-facing redirects outside the API group.
func (h *AuthHandler) RegisterPageRoutes(r gin.IRoutes) {
	r.GET("/auth/callback", h.CallbackRedirect)
	r.GET("/auth/verify", h.VerifyRedirect)
}

// Signup godoc
// @Summary Create an account
// @Description Creates a pending creator or brand account and sends the confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup form"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Sign in
// @Description Returns tokens and the dashboard the client should open
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary Rotate the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), h.GetDB(c), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "Refresh token"
// @Success 200 {object} dto.MessageResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), h.GetDB(c), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

// VerifyEmail godoc
// @Summary Confirm an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Token from the confirmation email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email successfully verified"})
}

// Callback godoc
// @Summary Resolve where a returning user lands
// @Description Works without a session; anonymous callers are sent to the login page
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CallbackResponse
// @Router /api/v1/auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	userID := middleware.GetUserID(c)
	c.JSON(http.StatusOK, h.authService.Callback(c.Request.Context(), h.GetDB(c), userID))
}

// CallbackRedirect is the browser variant of Callback; the token comes in the query string.
func (h *AuthHandler) CallbackRedirect(c *gin.Context) {
	var userID string
	if token := c.Query("access_token"); token != "" {
		claims, err := h.authService.ParseAccessToken(token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Callback with invalid access token", "error", err.Error())
		} else {
			userID = claims.UserID
		}
	}

	resp := h.authService.Callback(c.Request.Context(), h.GetDB(c), userID)
	c.Redirect(http.StatusFound, resp.Destination)
}

// VerifyRedirect handles the link from the confirmation email.
func (h *AuthHandler) VerifyRedirect(c *gin.Context) {
	target := url.Values{}
	if err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), c.Query("token")); err != nil {
		logger.CtxWarn(c.Request.Context(), "Email verification link rejected", "error", err.Error())
		target.Set("verified", "false")
	} else {
		target.Set("verified", "true")
	}
	c.Redirect(http.StatusFound, string(auth.DestinationLogin)+"?"+target.Encode())
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionDTO
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session, err := h.authService.Me(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
