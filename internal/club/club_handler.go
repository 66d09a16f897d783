package club

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubService ClubService
}

func NewClubHandler(clubService ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// @Summary Create a club
// @Description Create a new voting club with a unique URL slug
// @Tags admin
// @Accept json
// @Produce json
// @Param club body CreateClubRequest true "Club"
// @Success 201 {object} Club
// @Failure 400 {object} map[string]string
// @Router /admin/clubs [post]
func (h *ClubHandler) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubService.CreateClub(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrSlugExists) || errors.Is(err, ErrInvalidSlug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create club"})
		return
	}

	c.JSON(http.StatusCreated, club)
}

// @Summary List clubs
// @Tags admin
// @Produce json
// @Success 200 {array} Club
// @Router /admin/clubs [get]
func (h *ClubHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubService.ListClubs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clubs"})
		return
	}

	c.JSON(http.StatusOK, clubs)
}

// @Summary Open voting
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} Club
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/voting/open [post]
func (h *ClubHandler) OpenVoting(c *gin.Context) {
	h.setVotingState(c, true)
}

// @Summary Close voting
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} Club
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/voting/close [post]
func (h *ClubHandler) CloseVoting(c *gin.Context) {
	h.setVotingState(c, false)
}

func (h *ClubHandler) setVotingState(c *gin.Context, open bool) {
	club, err := h.clubService.SetVotingState(c.Request.Context(), c.Param("slug"), open)
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update voting state"})
		return
	}

	c.JSON(http.StatusOK, club)
}

// RegisterRoutes mounts the admin club routes.
func (h *ClubHandler) RegisterRoutes(admin *gin.RouterGroup) {
	clubs := admin.Group("/clubs")
	{
		clubs.POST("", h.CreateClub)
		clubs.GET("", h.ListClubs)
		clubs.POST("/:slug/voting/open", h.OpenVoting)
		clubs.POST("/:slug/voting/close", h.CloseVoting)
	}
}
