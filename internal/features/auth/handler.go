package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimewatch/crimewatch-api/internal/config"
	idToken "github.com/crimewatch/crimewatch-api/internal/pkg/jwt"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	"github.com/crimewatch/crimewatch-api/internal/pkg/validator"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Handler handles authentication HTTP requests
type Handler struct {
	repo   *Repository
	config *config.Config
}

// NewHandler creates a new auth handler
func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, config: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with email, password and phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}

	if !validator.IsValidPhone(req.PhoneNumber) {
		response.ValidationError(c, "Phone number must be in E.164 format", "INVALID_PHONE")
		return
	}
	if !validator.IsStrongPassword(req.Password) {
		response.ValidationError(c, "Password must be at least 8 characters with upper, lower and digit", "WEAK_PASSWORD")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to create account", "REGISTER_FAILED")
		return
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		DisplayName:  req.DisplayName,
		Role:         RoleUnverified,
	}

	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Email or phone number already registered", "DUPLICATE_USER")
			return
		}
		response.InternalServerError(c, "Failed to create account", "REGISTER_FAILED")
		return
	}

	token, err := idToken.GenerateToken(user.ID.Hex(), user.Email, user.Role, idToken.DefaultConfig(h.config.JWTSecret))
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "TOKEN_FAILED")
		return
	}

	response.Created(c, AuthResponse{User: user, AccessToken: token})
}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and wrong password
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	if user.IsBanned {
		response.Forbidden(c, "Account suspended", "ACCOUNT_BANNED")
		return
	}

	_ = h.repo.TouchLastLogin(c.Request.Context(), user.ID)

	token, err := idToken.GenerateToken(user.ID.Hex(), user.Email, user.Role, idToken.DefaultConfig(h.config.JWTSecret))
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "TOKEN_FAILED")
		return
	}

	response.Success(c, AuthResponse{User: user, AccessToken: token})
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}
	response.Success(c, user)
}
