package voting

import (
	"errors"
	"net/http"

	"bookclub-service/internal/club"

	"github.com/gin-gonic/gin"
)

type VotingHandler struct {
	votingService VotingService
	clubService   club.ClubService
}

func NewVotingHandler(votingService VotingService, clubService club.ClubService) *VotingHandler {
	return &VotingHandler{votingService: votingService, clubService: clubService}
}

// @Summary Submit votes
// @Description Submit one ballot: a voter name plus category/book selections. Re-submitting a category overwrites the earlier choice.
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param submission body VoteSubmissionRequest true "Ballot"
// @Success 200 {object} VoteSubmissionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clubs/{slug}/vote [post]
func (h *VotingHandler) SubmitVotes(c *gin.Context) {
	owner, err := h.clubService.GetClubBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, club.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load club"})
		return
	}

	var req VoteSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voter, votes, err := h.votingService.SubmitVotes(c.Request.Context(), owner, &req)
	if err != nil {
		var refErr *InvalidReferenceError
		switch {
		case errors.Is(err, ErrEmptyVoterName), errors.Is(err, ErrVotingClosed), errors.As(err, &refErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record votes"})
		}
		return
	}

	updated := make([]VoteResponse, len(votes))
	for i, vote := range votes {
		updated[i] = VoteResponse{
			ID:         vote.ID,
			VoterID:    vote.VoterID,
			CategoryID: vote.CategoryID,
			BookID:     vote.BookID,
		}
	}

	c.JSON(http.StatusOK, VoteSubmissionResponse{Voter: voter, UpdatedVotes: updated})
}

// RegisterRoutes mounts the public voting routes.
func (h *VotingHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/clubs/:slug/vote", h.SubmitVotes)
}
