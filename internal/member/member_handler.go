package member

import (
	"errors"
	"net/http"
	"strconv"

	"bookclub-service/internal/club"
	"bookclub-service/internal/voting"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService MemberService
	clubService   club.ClubService
}

func NewMemberHandler(memberService MemberService, clubService club.ClubService) *MemberHandler {
	return &MemberHandler{memberService: memberService, clubService: clubService}
}

// @Summary Add a best-member nominee
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param nominee body CreateNomineeRequest true "Nominee"
// @Success 201 {object} MemberNominee
// @Failure 400 {object} map[string]string
// @Router /admin/clubs/{slug}/nominees [post]
func (h *MemberHandler) AddNominee(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	var req CreateNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nominee, err := h.memberService.AddNominee(c.Request.Context(), owner.ID, &req)
	if err != nil {
		if errors.Is(err, ErrNomineeExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add nominee"})
		return
	}

	c.JSON(http.StatusCreated, nominee)
}

// @Summary List best-member nominees
// @Tags public
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {array} MemberNominee
// @Router /clubs/{slug}/nominees [get]
func (h *MemberHandler) ListNominees(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	nominees, err := h.memberService.GetNomineesByClub(c.Request.Context(), owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list nominees"})
		return
	}

	c.JSON(http.StatusOK, nominees)
}

// @Summary Remove a best-member nominee
// @Tags admin
// @Param slug path string true "Club slug"
// @Param id path int true "Nominee ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/clubs/{slug}/nominees/{id} [delete]
func (h *MemberHandler) RemoveNominee(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.memberService.RemoveNominee(c.Request.Context(), owner.ID, uint(id)); err != nil {
		if errors.Is(err, ErrNomineeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove nominee"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Submit a best-member ballot
// @Description One ballot per voter per club; re-submitting overwrites the earlier choice.
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Club slug"
// @Param ballot body MemberVoteRequest true "Ballot"
// @Success 200 {object} MemberVote
// @Failure 400 {object} map[string]string
// @Router /clubs/{slug}/member-vote [post]
func (h *MemberHandler) SubmitBallot(c *gin.Context) {
	owner, ok := h.resolveClub(c)
	if !ok {
		return
	}

	var req MemberVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ballot, err := h.memberService.SubmitBallot(c.Request.Context(), owner, &req)
	if err != nil {
		var unknownErr *UnknownNomineeError
		switch {
		case errors.Is(err, voting.ErrVotingClosed), errors.Is(err, voting.ErrEmptyVoterName), errors.As(err, &unknownErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record ballot"})
		}
		return
	}

	c.JSON(http.StatusOK, ballot)
}

func (h *MemberHandler) resolveClub(c *gin.Context) (*club.Club, bool) {
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

// RegisterRoutes mounts the nominee admin routes and the public ballot routes.
func (h *MemberHandler) RegisterRoutes(admin, public *gin.RouterGroup) {
	admin.POST("/clubs/:slug/nominees", h.AddNominee)
	admin.GET("/clubs/:slug/nominees", h.ListNominees)
	admin.DELETE("/clubs/:slug/nominees/:id", h.RemoveNominee)

	public.GET("/clubs/:slug/nominees", h.ListNominees)
	public.POST("/clubs/:slug/member-vote", h.SubmitBallot)
}
