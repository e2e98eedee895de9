package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/dto"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/auth"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *services.AuthService,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register handles user registration
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	var fullName *string
	if req.FullName != "" {
		fullName = &req.FullName
	}

	u, tokens, err := h.authService.Register(r.Context(), req.Email, req.Password, fullName)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	utils.WriteSuccess(w, http.StatusCreated, authResponse(u, tokens))
}

// Login handles user login
// @Summary User login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	u, tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)

	h.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User logged in")

	utils.WriteSuccess(w, http.StatusOK, authResponse(u, tokens))
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.BadRequest("Missing refresh token"))
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	utils.WriteSuccess(w, http.StatusOK, tokens)
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	u, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, userDTO(u))
}

// Logout clears the auth cookies
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Path:     "/",
			MaxAge:   -1,
		})
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	secure := h.config.Server.Environment == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})
}

func authResponse(u *user.User, tokens auth.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         userDTO(u),
	}
}

func userDTO(u *user.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
