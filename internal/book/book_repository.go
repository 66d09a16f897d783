package book

import (
	"context"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, clubID, id uint) (*Book, error)
	FindByClubID(ctx context.Context, clubID uint) ([]Book, error)
	Update(ctx context.Context, book *Book) error
	// DeleteWithVotes removes the book and every vote that references it,
	// scoped to the owning club.
	DeleteWithVotes(ctx context.Context, book *Book) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, clubID, id uint) (*Book, error) {
	var book Book
	err := r.db.WithContext(ctx).First(&book, "id = ? AND club_id = ?", id, clubID).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByClubID(ctx context.Context, clubID uint) ([]Book, error) {
	var books []Book
	err := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("created_at").Find(&books).Error
	return books, err
}

func (r *bookRepository) Update(ctx context.Context, book *Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) DeleteWithVotes(ctx context.Context, book *Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM votes WHERE club_id = ? AND book_id = ?", book.ClubID, book.ID).Error; err != nil {
			return err
		}
		return tx.Delete(book).Error
	})
}
