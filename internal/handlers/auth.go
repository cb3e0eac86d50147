package handlers

import (
	"net/http"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/token"
	"blogapi/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *token.Service
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, tokens *token.Service) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, tokens: tokens}
}

// Only these three fields are taken from the body; role is never
// client-assignable.
type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := utils.HashPassword(req.Password, h.cfg.PasswordSalt)
	if err != nil {
		fail(c, err)
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          hash,
		Role:              models.RoleUser,
		PasswordChangedAt: time.Now(),
	}
	if err := h.db.Create(&user).Error; err != nil {
		fail(c, err)
		return
	}

	tok, err := h.tokens.Issue(&user)
	if err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, user, gin.H{"token": tok})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		fail(c, apperr.New("Email or password not correct", http.StatusUnauthorized))
		return
	}

	if !utils.CheckPasswordHash(req.Password, h.cfg.PasswordSalt, user.Password) {
		fail(c, apperr.New("Email or password not correct", http.StatusUnauthorized))
		return
	}

	tok, err := h.tokens.Issue(&user)
	if err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, user, gin.H{"token": tok})
}
