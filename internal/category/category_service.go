package category

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	CreateCategory(ctx context.Context, clubID uint, req *CreateCategoryRequest) (*Category, error)
	GetCategoriesByClub(ctx context.Context, clubID uint, activeOnly bool) ([]Category, error)
	UpdateCategory(ctx context.Context, clubID, id uint, req *UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, clubID, id uint) error
}

type categoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, clubID uint, req *CreateCategoryRequest) (*Category, error) {
	category := &Category{
		ClubID:      clubID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Active:      true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoriesByClub(ctx context.Context, clubID uint, activeOnly bool) ([]Category, error) {
	return s.repo.FindByClubID(ctx, clubID, activeOnly)
}

func (s *categoryService) UpdateCategory(ctx context.Context, clubID, id uint, req *UpdateCategoryRequest) (*Category, error) {
	category, err := s.findCategory(ctx, clubID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, clubID, id uint) error {
	category, err := s.findCategory(ctx, clubID, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteWithVotes(ctx, category)
}

func (s *categoryService) findCategory(ctx context.Context, clubID, id uint) (*Category, error) {
	category, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
