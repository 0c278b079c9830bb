package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
	"github.com/sunyield/sunyield_backend/internal/platform/config"
	"github.com/sunyield/sunyield_backend/internal/utils"
)

// authHandler handles registration, OTP verification and login flows.
type authHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:        services.User,
		tokenService:       services.Token,
		googleOAuthService: services.GoogleOAuth,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services)

	// Login and OTP endpoints are rate limited per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/verify-otp", limitMiddleware, h.verifyOTP)
		auth.POST("/resend-otp", limitMiddleware, h.resendOTP)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/refresh", h.refreshToken)
		auth.POST("/google/id-token", h.loginWithGoogleIDToken)
	}
}

// issueTokens generates the access/refresh pair and persists the refresh
// token hash on the user record.
func (h *authHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpiry,
		RefreshToken:         refreshToken,
		User:                 dto.ToUserResponse(user),
	}, nil
}

// register godoc
// @Summary Register a new user
// @Description Creates an unverified account and emails a verification OTP.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// verifyOTP godoc
// @Summary Verify registration OTP
// @Description Confirms the emailed OTP, marks the account verified and logs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "OTP invalid or expired"
// @Router /auth/verify-otp [post]
func (h *authHandler) verifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(c, err, "Failed to verify OTP")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// resendOTP godoc
// @Summary Resend registration OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendOTPRequest true "Email"
// @Success 204 "OTP sent"
// @Failure 400 {object} ErrorResponse
// @Router /auth/resend-otp [post]
func (h *authHandler) resendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to resend OTP")
		return
	}

	c.Status(http.StatusNoContent)
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password and returns token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 403 {object} ErrorResponse "Account not verified"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// refreshToken godoc
// @Summary Refresh the access token
// @Description Rotates the refresh token and returns a fresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "User ID and refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Refresh token invalid or expired"
// @Router /auth/refresh [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:          resp.AccessToken,
		AccessTokenExpiresAt: resp.AccessTokenExpiresAt,
		RefreshToken:         resp.RefreshToken,
	})
}

// loginWithGoogleIDToken godoc
// @Summary Login with a Google ID token
// @Description Validates a Google ID token, provisioning the account on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param idToken body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Router /auth/google/id-token [post]
func (h *authHandler) loginWithGoogleIDToken(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)

	info := &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		Name:          name,
		VerifiedEmail: emailVerified,
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to resolve Google user")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}
