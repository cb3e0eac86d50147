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

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// List returns all comments with their interaction tallies. No pagination,
// no visibility filter.
func (h *CommentHandler) List(c *gin.Context) {
	var comments []models.Comment
	if err := h.db.Find(&comments).Error; err != nil {
		fail(c, err)
		return
	}

	ids := make([]uint, len(comments))
	for i, cm := range comments {
		ids[i] = cm.ID
	}
	tallies, err := interactionTallies(h.db, "comment_id", ids)
	if err != nil {
		fail(c, err)
		return
	}
	for i := range comments {
		comments[i].Interactions = tallies[comments[i].ID]
	}

	sendSuccess(c, http.StatusOK, comments, nil)
}

// Create attaches a comment to an existing post.
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	err := h.db.Select("id").First(&models.Post{}, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperr.New("There is no post with that id", http.StatusNotFound))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	comment := models.Comment{
		Body:        req.Body,
		PostID:      postID,
		CreatedByID: user.ID,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, comment, nil)
}
