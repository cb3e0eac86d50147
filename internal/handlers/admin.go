package handlers

import (
	"net/http"

	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Statistics is one flat record merging the three independent aggregates.
type Statistics struct {
	TotalNumberOfPosts                          int64 `json:"totalNumberOfPosts"`
	TotalNumberOfPendingPosts                   int64 `json:"totalNumberOfPendingPosts"`
	TotalNumberOfApprovedPosts                  int64 `json:"totalNumberOfApprovedPosts"`
	TotalNumberOfRejectedPosts                  int64 `json:"totalNumberOfRejectedPosts"`
	TotalNumberOfCommentsOnPosts                int64 `json:"totalNumberOfCommentsOnPosts"`
	TotalNumberOfInteractionsOnPostsAndComments int64 `json:"totalNumberOfInteractionsOnPostsAndComments"`
	TotalNumberOfInteractionsOnPosts            int64 `json:"totalNumberOfInteractionsOnPosts"`
	TotalNumberOfInteractionsOnComments         int64 `json:"totalNumberOfInteractionsOnComments"`
}

type postStats struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

type interactionStats struct {
	Total      int64
	OnPosts    int64
	OnComments int64
}

// GetStatistics aggregates global counts across posts, comments and
// interactions. Point-in-time snapshot, no filtering by requester.
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	var ps postStats
	err := h.db.Model(&models.Post{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS rejected`,
			models.PostStatusPending, models.PostStatusApproved, models.PostStatusRejected).
		Scan(&ps).Error
	if err != nil {
		fail(c, err)
		return
	}

	var comments int64
	if err := h.db.Model(&models.Comment{}).Count(&comments).Error; err != nil {
		fail(c, err)
		return
	}

	var is interactionStats
	err = h.db.Model(&models.Interaction{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN post_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS on_posts,
			COALESCE(SUM(CASE WHEN comment_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS on_comments`).
		Scan(&is).Error
	if err != nil {
		fail(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, Statistics{
		TotalNumberOfPosts:                          ps.Total,
		TotalNumberOfPendingPosts:                   ps.Pending,
		TotalNumberOfApprovedPosts:                  ps.Approved,
		TotalNumberOfRejectedPosts:                  ps.Rejected,
		TotalNumberOfCommentsOnPosts:                comments,
		TotalNumberOfInteractionsOnPostsAndComments: is.Total,
		TotalNumberOfInteractionsOnPosts:            is.OnPosts,
		TotalNumberOfInteractionsOnComments:         is.OnComments,
	}, nil)
}
