package book

import "time"

/** --------------------ENTITIES-------------------- */

// Book is a candidate within a club. ReadersCount is the denominator of the
// weighted result score; zero marks the book as unscored.
type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClubID       uint      `gorm:"index;not null" json:"club_id"`
	Title        string    `gorm:"not null" json:"title"`
	Author       *string   `json:"author"`
	ReadersCount int       `gorm:"not null;default:0" json:"readers_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Book) TableName() string { return "books" }

/** -------------------- DTOs -------------------- */

type CreateBookRequest struct {
	Title        string  `json:"title" binding:"required"`
	Author       *string `json:"author"`
	ReadersCount int     `json:"readers_count" binding:"gte=0"`
}

type UpdateBookRequest struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	ReadersCount *int    `json:"readers_count" binding:"omitempty,gte=0"`
}
