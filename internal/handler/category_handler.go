package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom/internal/service"
)

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.categoryService.ListCategories(c.Request.Context()))
}
