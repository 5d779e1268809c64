package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and signs it in.
// POST /api/v1/users/register
func (h *Handlers) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.handleError(c, err, "user", "register")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.store.CreateUser(c.Request.Context(), strings.TrimSpace(req.Name), email, string(hash))
	if err != nil {
		h.handleError(c, err, "user", "register")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID.String(), string(user.Role))
	if err != nil {
		h.handleError(c, err, "token", "issue")
		return
	}

	h.logger.Info("User registered", logger.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login verifies credentials and issues a token.
// POST /api/v1/users/login
func (h *Handlers) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		h.handleError(c, domain.ErrInvalidCredentials, "user", "login")
		return
	}
	if err != nil {
		h.handleError(c, err, "user", "login")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.handleError(c, domain.ErrInvalidCredentials, "user", "login")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID.String(), string(user.Role))
	if err != nil {
		h.handleError(c, err, "token", "issue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout acknowledges a sign-out. Tokens are stateless; the client drops it.
// POST /api/v1/users/logout
func (h *Handlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the caller's account.
// GET /api/v1/users/profile
func (h *Handlers) Profile(c *gin.Context) {
	id, _, ok := requireCaller(c)
	if !ok {
		return
	}
	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "user", "get")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile patches the caller's account.
// PATCH /api/v1/users/profile
func (h *Handlers) UpdateProfile(c *gin.Context) {
	id, _, ok := requireCaller(c)
	if !ok {
		return
	}
	var req domain.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.store.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err, "user", "update")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUserRole changes another account's role.
// PATCH /api/v1/admin/users/:id/role
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	adminID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id", "user")
	if !ok {
		return
	}
	var req domain.RoleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	switch {
	case !req.Role.Valid():
		h.handleError(c, domain.ErrInvalidRole, "user", "update role")
		return
	case id == adminID:
		h.handleError(c, domain.ErrOwnRole, "user", "update role")
		return
	}

	user, err := h.store.UpdateUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.handleError(c, err, "user", "update role")
		return
	}
	h.logger.Info("User role changed",
		logger.String("user_id", id.String()),
		logger.String("role", string(req.Role)),
		logger.String("admin_id", adminID.String()),
	)
	c.JSON(http.StatusOK, user)
}
