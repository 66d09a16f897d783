package results

import (
	"context"

	"gorm.io/gorm"
)

// CandidateRow is a voted-for book with its aggregated vote count. Books with
// zero votes in the category never appear.
type CandidateRow struct {
	BookID       uint
	Title        string
	Author       *string
	ReadersCount int
	VotesCount   int
}

type ResultsRepository interface {
	// FindCandidates aggregates the category's votes per book, in ascending
	// book id order so the tally enumerates candidates deterministically.
	FindCandidates(ctx context.Context, categoryID uint) ([]CandidateRow, error)
}

type resultsRepository struct {
	db *gorm.DB
}

func NewResultsRepository(db *gorm.DB) ResultsRepository {
	return &resultsRepository{db: db}
}

func (r *resultsRepository) FindCandidates(ctx context.Context, categoryID uint) ([]CandidateRow, error) {
	var rows []CandidateRow
	err := r.db.WithContext(ctx).
		Table("books").
		Select("books.id AS book_id, books.title, books.author, books.readers_count, COUNT(votes.id) AS votes_count").
		Joins("JOIN votes ON votes.book_id = books.id").
		Where("votes.category_id = ?", categoryID).
		Group("books.id, books.title, books.author, books.readers_count").
		Order("books.id").
		Scan(&rows).Error
	return rows, err
}
