package club

import "time"

/** --------------------ENTITIES-------------------- */

// Club is one independent voting event. Books, categories and voters are all
// scoped under a club; VotingOpen gates vote acceptance and public results.
type Club struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	// No DB-side default: gorm would omit the column on insert whenever the
	// value is false and the default would flip the club open. The service
	// sets the open-by-default behavior explicitly.
	VotingOpen bool      `gorm:"not null" json:"voting_open"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Club) TableName() string { return "clubs" }

/** -------------------- DTOs -------------------- */

type CreateClubRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	VotingOpen *bool  `json:"voting_open"`
}
