package book

import (
	"errors"
	"net/http"
	"strconv"

	"bookclub-service/internal/club"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService BookService
	clubService club.ClubService
}

func NewBookHandler(bookService BookService, clubService club.ClubService) *BookHandler {
	return &BookHandler{bookService: bookService, clubService: clubService}
}

// @Summary Add a book
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param book body CreateBookRequest true "Book"
// @Success 201 {object} Book
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), owner.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create book"})
		return
	}

	c.JSON(http.StatusCreated, book)
}

// @Summary List books
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {array} Book
// @Router /admin/clubs/{slug}/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	books, err := h.bookService.GetBooksByClub(c.Request.Context(), owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list books"})
		return
	}

	c.JSON(http.StatusOK, books)
}

// @Summary Update a book
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param id path int true "Book ID"
// @Param book body UpdateBookRequest true "Fields to update"
// @Success 200 {object} Book
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), owner.ID, id, &req)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update book"})
		return
	}

	c.JSON(http.StatusOK, book)
}

// @Summary Delete a book
// @Description Delete a book and any votes referencing it
// @Tags admin
// @Param slug path string true "Club slug"
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), owner.ID, id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookHandler) resolveClub(c *gin.Context) (*club.Club, bool) {
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

// RegisterRoutes mounts the admin book routes.
func (h *BookHandler) RegisterRoutes(admin *gin.RouterGroup) {
	books := admin.Group("/clubs/:slug/books")
	{
		books.POST("", h.CreateBook)
		books.GET("", h.ListBooks)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}
