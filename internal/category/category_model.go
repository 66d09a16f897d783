package category

/** --------------------ENTITIES-------------------- */

// Category is an award category within a club. Only active categories accept
// new votes; inactive ones still show up in result summaries.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ClubID      uint    `gorm:"index;not null" json:"club_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`
	// No DB-side default; a default of true would override an explicit false
	// on insert. The service applies the active-by-default behavior.
	Active      bool    `gorm:"not null" json:"active"`
}

func (Category) TableName() string { return "categories" }

/** -------------------- DTOs -------------------- */

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
	Active      *bool   `json:"active"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"active"`
}
