package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HiroyasuHigashida/sns-backend/internal/auth"
	"github.com/HiroyasuHigashida/sns-backend/internal/dto"
	"github.com/HiroyasuHigashida/sns-backend/internal/service"
)

// AuthHandler handles register and login. There is no logout endpoint:
// tokens are stateless and expire on their own.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.TokenService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account details"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrPasswordTooLong),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	h.respondWithToken(c, u.ID)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	h.respondWithToken(c, u.ID)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, userID string) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
