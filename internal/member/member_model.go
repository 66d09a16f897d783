package member

import "time"

/** --------------------ENTITIES-------------------- */

// MemberNominee is a person put forward for the club's best-member award.
type MemberNominee struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ClubID uint   `gorm:"uniqueIndex:uix_best_member_nominee_club_name;not null" json:"club_id"`
	Name   string `gorm:"uniqueIndex:uix_best_member_nominee_club_name;not null" json:"name"`
}

func (MemberNominee) TableName() string { return "best_member_nominees" }

// MemberVote is a voter's single best-member ballot for a club. One per
// (club, voter); re-submitting overwrites the nominee.
type MemberVote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VoterID     uint      `gorm:"uniqueIndex:uix_best_member_vote_club_voter;not null" json:"voter_id"`
	ClubID      uint      `gorm:"uniqueIndex:uix_best_member_vote_club_voter;not null" json:"club_id"`
	NomineeName string    `gorm:"not null" json:"nominee_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MemberVote) TableName() string { return "best_member_votes" }

/** -------------------- DTOs -------------------- */

type CreateNomineeRequest struct {
	Name string `json:"name" binding:"required"`
}

type MemberVoteRequest struct {
	VoterName   string `json:"voter_name" binding:"required"`
	NomineeName string `json:"nominee_name" binding:"required"`
}

// MemberResult is one row of the best-member tally.
type MemberResult struct {
	NomineeName string `json:"nominee_name"`
	VotesCount  int    `json:"votes_count"`
	IsWinner    bool   `json:"is_winner"`
}
