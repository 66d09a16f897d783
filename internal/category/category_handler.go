package category

import (
	"errors"
	"net/http"
	"strconv"

	"bookclub-service/internal/club"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService CategoryService
	clubService     club.ClubService
}

func NewCategoryHandler(categoryService CategoryService, clubService club.ClubService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, clubService: clubService}
}

// @Summary Add a category
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param category body CreateCategoryRequest true "Category"
// @Success 201 {object} Category
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), owner.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary List categories
// @Description List all categories of a club, active and inactive
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {array} Category
// @Router /admin/clubs/{slug}/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.GetCategoriesByClub(c.Request.Context(), owner.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary Update a category
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param id path int true "Category ID"
// @Param category body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} Category
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), owner.ID, id, &req)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary Delete a category
// @Description Delete a category and any votes cast in it
// @Tags admin
// @Param slug path string true "Club slug"
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), owner.ID, id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) resolveClub(c *gin.Context) (*club.Club, bool) {
	owner, err := h.clubService.GetClubBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, club.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load club"})
		}
		return nil, false
	}
	return owner, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// RegisterRoutes mounts the admin category routes.
func (h *CategoryHandler) RegisterRoutes(admin *gin.RouterGroup) {
	categories := admin.Group("/clubs/:slug/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}
