package handlers

import (
	"errors"
	"net/http"

	"hively/models"
	"hively/services/user"
	"hively/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the identity provider over HTTP.
type UserHandler struct {
	Svc user.UserService
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Register creates an account and returns a token.
func (h *UserHandler) Register(c *gin.Context) {
	var input models.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "email already registered", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to register", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a token.
func (h *UserHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Authenticate(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign in", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated caller's account.
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, _ := userID.(string)

	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch user", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// Logout revokes the caller's current token.
func (h *UserHandler) Logout(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, _ := userID.(string)

	if err := h.Svc.Revoke(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}
