package handlers

import (
	"net/http"

	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List returns every user. Admin only, enforced at the route.
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		fail(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, users, nil)
}
