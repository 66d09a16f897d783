package book

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrBookNotFound = errors.New("book not found")

type BookService interface {
	CreateBook(ctx context.Context, clubID uint, req *CreateBookRequest) (*Book, error)
	GetBooksByClub(ctx context.Context, clubID uint) ([]Book, error)
	UpdateBook(ctx context.Context, clubID, id uint, req *UpdateBookRequest) (*Book, error)
	DeleteBook(ctx context.Context, clubID, id uint) error
}

type bookService struct {
	repo BookRepository
}

func NewBookService(repo BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) CreateBook(ctx context.Context, clubID uint, req *CreateBookRequest) (*Book, error) {
	book := &Book{
		ClubID:       clubID,
		Title:        req.Title,
		Author:       req.Author,
		ReadersCount: req.ReadersCount,
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetBooksByClub(ctx context.Context, clubID uint) ([]Book, error) {
	return s.repo.FindByClubID(ctx, clubID)
}

func (s *bookService) UpdateBook(ctx context.Context, clubID, id uint, req *UpdateBookRequest) (*Book, error) {
	book, err := s.findBook(ctx, clubID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = req.Author
	}
	if req.ReadersCount != nil {
		book.ReadersCount = *req.ReadersCount
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, clubID, id uint) error {
	book, err := s.findBook(ctx, clubID, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteWithVotes(ctx, book)
}

func (s *bookService) findBook(ctx context.Context, clubID, id uint) (*Book, error) {
	book, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}
