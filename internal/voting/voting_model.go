package voting

import "time"

/** --------------------ENTITIES-------------------- */

// Voter is a name-identified participant. The display name is the whole
// identity: unique per club, created lazily on first submission.
type Voter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClubID    uint      `gorm:"uniqueIndex:uix_voter_club_name;not null" json:"club_id"`
	Name      string    `gorm:"uniqueIndex:uix_voter_club_name;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Voter) TableName() string { return "voters" }

// Vote is the single live selection of a voter in one category. Re-submitting
// overwrites BookID in place; no history is kept. ClubID is denormalized so
// cascade cleanup can stay scoped to one club without joining through Voter.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VoterID    uint      `gorm:"uniqueIndex:uix_vote_voter_category;not null" json:"voter_id"`
	ClubID     uint      `gorm:"index;not null" json:"club_id"`
	CategoryID uint      `gorm:"uniqueIndex:uix_vote_voter_category;not null" json:"category_id"`
	BookID     uint      `gorm:"index;not null" json:"book_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Vote) TableName() string { return "votes" }

/** -------------------- DTOs -------------------- */

type VoteEntry struct {
	CategoryID uint `json:"category_id" binding:"required"`
	BookID     uint `json:"book_id" binding:"required"`
}

type VoteSubmissionRequest struct {
	VoterName string      `json:"voter_name" binding:"required"`
	Votes     []VoteEntry `json:"votes" binding:"required"`
}

type VoteResponse struct {
	ID         uint `json:"id"`
	VoterID    uint `json:"voter_id"`
	CategoryID uint `json:"category_id"`
	BookID     uint `json:"book_id"`
}

type VoteSubmissionResponse struct {
	Voter        *Voter         `json:"voter"`
	UpdatedVotes []VoteResponse `json:"updated_votes"`
}
