package api

import (
	"net/http" // HTTP status codes

	"payment_tracker/internal/middleware" // Context keys
	"payment_tracker/internal/service"    // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username (email) must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for registration
type RegisterResponse struct {
	ID       uint   `json:"id"`       // New account ID
	Username string `json:"username"` // Registered username
}

// Response struct for authentication
type AuthResponse struct {
	AccessToken string `json:"accessToken"` // JWT token
}

// Response struct for the profile endpoint
type ProfileResponse struct {
	ID       uint   `json:"id"`       // Account ID
	Username string `json:"username"` // Login identifier
	Role     string `json:"role"`     // Stored role
}

// RegisterHandler creates an account; it does not log the user in
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err) // 409 on duplicate
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, RegisterResponse{ID: user.ID, Username: user.Username})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err) // 401 on bad credentials
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{AccessToken: token})
	}
}

// ProfileHandler returns the account of the authenticated user
func ProfileHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.ContextUserID) // Set by JWTAuthMiddleware
		user, err := auth.Profile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err) // 404 when the account is gone
			return
		}
		c.JSON(http.StatusOK, ProfileResponse{ID: user.ID, Username: user.Username, Role: user.Role})
	}
}
