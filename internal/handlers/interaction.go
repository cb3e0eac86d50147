package handlers

import (
	"errors"
	"net/http"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InteractionHandler struct {
	db *gorm.DB
}

func NewInteractionHandler(db *gorm.DB) *InteractionHandler {
	return &InteractionHandler{db: db}
}

type createInteractionRequest struct {
	Type string `json:"type" binding:"required,oneof=LIKE DISLIKE SAD ANGRY"`
}

// List returns all interactions, unenriched.
func (h *InteractionHandler) List(c *gin.Context) {
	var interactions []models.Interaction
	if err := h.db.Find(&interactions).Error; err != nil {
		fail(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, interactions, nil)
}

func (h *InteractionHandler) CreateOnPost(c *gin.Context) {
	h.interactOn(c, "post")
}

func (h *InteractionHandler) CreateOnComment(c *gin.Context) {
	h.interactOn(c, "comment")
}

// interactOn records a typed reaction against an existing post or comment.
// Exactly one target reference ends up set.
func (h *InteractionHandler) interactOn(c *gin.Context, kind string) {
	var req createInteractionRequest
	if !bindJSON(c, &req) {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var err error
	if kind == "post" {
		err = h.db.Select("id").First(&models.Post{}, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New("There is no post with that id", http.StatusNotFound))
			return
		}
	} else {
		err = h.db.Select("id").First(&models.Comment{}, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New("There is no comment with that id", http.StatusNotFound))
			return
		}
	}
	if err != nil {
		fail(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	interaction := models.Interaction{
		Type:        models.InteractionType(req.Type),
		CreatedByID: user.ID,
	}
	if kind == "post" {
		interaction.PostID = &id
	} else {
		interaction.CommentID = &id
	}

	if err := h.db.Create(&interaction).Error; err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, interaction, nil)
}
