package results

import (
	"errors"
	"net/http"

	"bookclub-service/internal/club"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	resultsService ResultsService
	clubService    club.ClubService
}

func NewResultsHandler(resultsService ResultsService, clubService club.ClubService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService, clubService: clubService}
}

// @Summary Club results
// @Description Weighted per-category ranking plus best-member tally, available to admins at any time
// @Tags admin
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} ResultsResponse
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/results [get]
func (h *ResultsHandler) AdminResults(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}
	h.writeResults(c, owner)
}

// @Summary Public results summary
// @Description Final standings; only served once voting has closed
// @Tags public
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} ResultsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clubs/{slug}/results/summary [get]
func (h *ResultsHandler) PublicResults(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	// Results stay hidden from the public while voting is in progress.
	if owner.VotingOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voting still open"})
		return
	}
	h.writeResults(c, owner)
}

func (h *ResultsHandler) writeResults(c *gin.Context, owner *club.Club) {
	res, err := h.resultsService.ComputeResults(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute results"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResultsHandler) resolveClub(c *gin.Context) (*club.Club, bool) {
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

// RegisterRoutes mounts the results routes on both route trees.
func (h *ResultsHandler) RegisterRoutes(admin, public *gin.RouterGroup) {
	admin.GET("/clubs/:slug/results", h.AdminResults)
	public.GET("/clubs/:slug/results/summary", h.PublicResults)
}
