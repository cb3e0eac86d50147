package handlers

import (
	"math"
	"net/http"
	"strconv"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// List returns a page of posts enriched with per-type interaction tallies
// and a reduced author view. Regular users only see approved posts; any
// other role sees every status.
func (h *PostHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	limit := 10
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	visible := func(q *gorm.DB) *gorm.DB {
		if user.Role == models.RoleUser {
			return q.Where("status = ?", models.PostStatusApproved)
		}
		return q
	}

	var total int64
	if err := visible(h.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		fail(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	// NOTE: compares the page number against the raw total/limit ratio, not
	// totalPages; kept for compatibility with existing clients.
	hasNextPage := float64(page) < float64(total)/float64(limit)
	hasPrevPage := page != 1

	var posts []models.Post
	err := visible(h.db).
		Preload("CreatedBy", authorSelect).
		// NOTE: ordered by the author reference, not creation time; kept for
		// compatibility with existing clients.
		Order("created_by_id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		fail(c, err)
		return
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	tallies, err := interactionTallies(h.db, "post_id", ids)
	if err != nil {
		fail(c, err)
		return
	}
	for i := range posts {
		posts[i].Interactions = tallies[posts[i].ID]
	}

	sendSuccess(c, http.StatusOK, posts, gin.H{
		"total":       total,
		"page":        page,
		"limit":       limit,
		"totalPages":  totalPages,
		"hasNextPage": hasNextPage,
		"hasPrevPage": hasPrevPage,
	})
}

// Create stores a new post for the authenticated user. Status always starts
// at PENDING no matter what the body carries.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	post := models.Post{
		Title:       req.Title,
		Body:        req.Body,
		Status:      models.PostStatusPending,
		CreatedByID: user.ID,
	}
	if err := h.db.Create(&post).Error; err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, post, nil)
}

func (h *PostHandler) Approve(c *gin.Context) {
	h.setStatus(c, models.PostStatusApproved)
}

func (h *PostHandler) Reject(c *gin.Context) {
	h.setStatus(c, models.PostStatusRejected)
}

// setStatus is the moderation transition: update the status, then return
// the post re-read with its author populated.
func (h *PostHandler) setStatus(c *gin.Context, status models.PostStatus) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res := h.db.Model(&models.Post{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		fail(c, apperr.New("There is no post with this id", http.StatusNotFound))
		return
	}

	var post models.Post
	if err := h.db.Preload("CreatedBy", authorSelect).First(&post, id).Error; err != nil {
		fail(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, post, nil)
}
