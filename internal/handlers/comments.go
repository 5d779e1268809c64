package handlers

import (
	"net/http"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListComments returns a post's comments.
// GET /api/v1/posts/:id/comments
func (h *Handlers) ListComments(c *gin.Context) {
	postID, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	comments, err := h.store.ListComments(c.Request.Context(), postID)
	if err != nil {
		h.handleError(c, err, "comments", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// CreateComment adds the caller's comment to a post.
// POST /api/v1/posts/:id/comments
func (h *Handlers) CreateComment(c *gin.Context) {
	userID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	postID, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	var req domain.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.store.CreateComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		h.handleError(c, err, "comment", "create")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits a comment owned by the caller, or any comment for admins.
// PATCH /api/v1/comments/:id
func (h *Handlers) UpdateComment(c *gin.Context) {
	id, ok := h.authorizeComment(c)
	if !ok {
		return
	}
	var req domain.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.store.UpdateComment(c.Request.Context(), id, req.Content)
	if err != nil {
		h.handleError(c, err, "comment", "update")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment owned by the caller, or any comment for admins.
// DELETE /api/v1/comments/:id
func (h *Handlers) DeleteComment(c *gin.Context) {
	id, ok := h.authorizeComment(c)
	if !ok {
		return
	}
	if err := h.store.DeleteComment(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "comment", "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *Handlers) authorizeComment(c *gin.Context) (uuid.UUID, bool) {
	userID, role, ok := requireCaller(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := parseUUID(c, "id", "comment")
	if !ok {
		return uuid.Nil, false
	}
	comment, err := h.store.GetComment(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "comment", "get")
		return uuid.Nil, false
	}
	if role != domain.RoleAdmin && comment.UserID != userID {
		h.handleError(c, domain.ErrForbidden, "comment", "modify")
		return uuid.Nil, false
	}
	return id, true
}
