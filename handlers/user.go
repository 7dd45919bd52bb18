package handlers

import (
	"net/http"

	"meetblock/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the thin user-resolution boundary.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// GetUserByID resolves a user id.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	u, err := h.Service.ResolveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user", "details": err.Error()})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user does not exist"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// CreateUser registers a minimal user record.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := h.Service.Create(c.Request.Context(), input.Username, input.Email)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}
