package handlers

import (
	"net/http"

	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

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

// LoginUser handles staff login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req models.Credentials
	if !bindJSON(c, &req) {
		return
	}
	authResp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutUser acknowledges a logout. Tokens are stateless; the client discards its copy.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.authService.ListUsers()})
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req services.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), c.Param("id"), req); err != nil {
		respondServiceError(c, err, "Failed to reset password.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteUser removes a staff account. Deleting your own account is refused.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == c.GetString(middleware.ContextUserID) {
		utils.RespondValidationFailed(c, "you cannot delete your own account")
		return
	}
	if err := h.authService.DeleteUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
