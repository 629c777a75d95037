package handlers

import (
	"net/http"

	"snack_factory_backend/internal/middleware"
	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

type authEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Register: Failed to bind JSON")
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Register: Error from authService.Register")
		return
	}
	c.JSON(http.StatusCreated, authEnvelope{Success: true, Message: "User registered successfully", Token: resp.Token, User: resp.User})
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Login: Failed to bind JSON")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login: Error from authService.Login")
		return
	}
	c.JSON(http.StatusOK, authEnvelope{Success: true, Message: "Login successful", Token: resp.Token, User: resp.User})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err, "Me: Error from authService.GetUserProfile")
		return
	}
	utils.RespondOK(c, user.Public())
}
