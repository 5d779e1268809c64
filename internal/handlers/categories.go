package handlers

import (
	"net/http"
	"strings"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
)

// ListCategories returns every category.
// GET /api/v1/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "categories", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// CreateCategory adds a category.
// POST /api/v1/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req domain.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	category, err := h.store.CreateCategory(c.Request.Context(), strings.TrimSpace(*req.Name), req.Description)
	if err != nil {
		h.handleError(c, err, "category", "create")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory patches a category.
// PATCH /api/v1/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := parseUUID(c, "id", "category")
	if !ok {
		return
	}
	var req domain.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.store.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err, "category", "update")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Its posts become uncategorized.
// DELETE /api/v1/categories/:id
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := parseUUID(c, "id", "category")
	if !ok {
		return
	}
	if err := h.store.DeleteCategory(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "category", "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
