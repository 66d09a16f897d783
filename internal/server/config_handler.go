package server

import (
	"errors"
	"net/http"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"

	"github.com/gin-gonic/gin"
)

// ClubConfigResponse bundles everything a voting front end needs to render a
// club: the club itself, its books and its categories.
type ClubConfigResponse struct {
	Club       *club.Club          `json:"club"`
	Books      []book.Book         `json:"books"`
	Categories []category.Category `json:"categories"`
}

type ConfigHandler struct {
	clubService     club.ClubService
	bookService     book.BookService
	categoryService category.CategoryService
}

func NewConfigHandler(clubService club.ClubService, bookService book.BookService, categoryService category.CategoryService) *ConfigHandler {
	return &ConfigHandler{
		clubService:     clubService,
		bookService:     bookService,
		categoryService: categoryService,
	}
}

// @Summary Club detail
// @Description Club with all of its books and categories, inactive included
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} ClubConfigResponse
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug} [get]
func (h *ConfigHandler) AdminClubDetail(c *gin.Context) {
	h.clubConfig(c, false)
}

// @Summary Public club configuration
// @Description Club with its books and the active categories open for voting
// @Tags public
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} ClubConfigResponse
// @Failure 404 {object} map[string]string
// @Router /clubs/{slug}/config [get]
func (h *ConfigHandler) PublicClubConfig(c *gin.Context) {
	h.clubConfig(c, true)
}

func (h *ConfigHandler) clubConfig(c *gin.Context, activeOnly bool) {
	ctx := c.Request.Context()

	owner, err := h.clubService.GetClubBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, club.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load club"})
		return
	}

	books, err := h.bookService.GetBooksByClub(ctx, owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load books"})
		return
	}

	categories, err := h.categoryService.GetCategoriesByClub(ctx, owner.ID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, ClubConfigResponse{
		Club:       owner,
		Books:      books,
		Categories: categories,
	})
}

// RegisterRoutes mounts the composite club views.
func (h *ConfigHandler) RegisterRoutes(admin, public *gin.RouterGroup) {
	admin.GET("/clubs/:slug", h.AdminClubDetail)
	public.GET("/clubs/:slug/config", h.PublicClubConfig)
}
