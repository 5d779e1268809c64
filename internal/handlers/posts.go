package handlers

import (
	"net/http"
	"strconv"

	"github.com/Arhamsiaf65/CityInsights/internal/database"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListPosts lists posts with optional filters.
// GET /api/v1/posts?title=&author=&category=&tag=&featured=&page=&limit=
func (h *Handlers) ListPosts(c *gin.Context) {
	limit := queryInt(c, "limit", database.DefaultPageLimit)
	page := queryInt(c, "page", 1)

	filter := domain.PostFilter{
		Title:    c.Query("title"),
		Author:   c.Query("author"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be true or false"})
			return
		}
		filter.Featured = &featured
	}

	posts, err := h.store.ListPosts(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err, "posts", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "page": page})
}

// PopularPosts lists posts by engagement.
// GET /api/v1/posts/popular
func (h *Handlers) PopularPosts(c *gin.Context) {
	posts, err := h.store.PopularPosts(c.Request.Context(), queryInt(c, "limit", database.DefaultPageLimit))
	if err != nil {
		h.handleError(c, err, "posts", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// SearchPosts matches title and content.
// GET /api/v1/posts/search?q=
func (h *Handlers) SearchPosts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit := queryInt(c, "limit", database.DefaultPageLimit)
	page := queryInt(c, "page", 1)

	posts, err := h.store.SearchPostsPage(c.Request.Context(), q, limit, (page-1)*limit)
	if err != nil {
		h.handleError(c, err, "posts", "search")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "page": page})
}

// GetPost returns one post.
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	id, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	post, err := h.store.GetPost(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "post", "get")
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost publishes a post as the caller.
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	authorID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	var req domain.PostCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.store.CreatePost(c.Request.Context(), authorID, &req)
	if err != nil {
		h.handleError(c, err, "post", "create")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost patches a post owned by the caller, or any post for admins.
// PATCH /api/v1/posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	id, ok := h.authorizePost(c)
	if !ok {
		return
	}
	var req domain.PostUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.store.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err, "post", "update")
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post owned by the caller, or any post for admins.
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	id, ok := h.authorizePost(c)
	if !ok {
		return
	}
	if err := h.store.DeletePost(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "post", "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handlers) authorizePost(c *gin.Context) (uuid.UUID, bool) {
	userID, role, ok := requireCaller(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := parseUUID(c, "id", "post")
	if !ok {
		return uuid.Nil, false
	}
	post, err := h.store.GetPost(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "post", "get")
		return uuid.Nil, false
	}
	if role != domain.RoleAdmin && post.AuthorID != userID {
		h.handleError(c, domain.ErrForbidden, "post", "modify")
		return uuid.Nil, false
	}
	return id, true
}

// ViewPost counts a view.
// POST /api/v1/posts/:id/view
func (h *Handlers) ViewPost(c *gin.Context) {
	id, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	views, err := h.store.IncrementViews(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "post", "count view for")
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// SharePost counts a share.
// POST /api/v1/posts/:id/share
func (h *Handlers) SharePost(c *gin.Context) {
	id, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	shares, err := h.store.IncrementShares(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "post", "count share for")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// LikePost toggles the caller's like.
// POST /api/v1/posts/:id/like
func (h *Handlers) LikePost(c *gin.Context) {
	userID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id", "post")
	if !ok {
		return
	}
	result, err := h.store.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err, "post", "like")
		return
	}
	c.JSON(http.StatusOK, result)
}
