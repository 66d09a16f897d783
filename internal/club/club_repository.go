package club

import (
	"context"

	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(ctx context.Context, club *Club) error
	FindBySlug(ctx context.Context, slug string) (*Club, error)
	List(ctx context.Context) ([]Club, error)
	Update(ctx context.Context, club *Club) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(ctx context.Context, club *Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *clubRepository) FindBySlug(ctx context.Context, slug string) (*Club, error) {
	var club Club
	err := r.db.WithContext(ctx).First(&club, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) List(ctx context.Context) ([]Club, error) {
	var clubs []Club
	err := r.db.WithContext(ctx).Order("created_at").Find(&clubs).Error
	return clubs, err
}

func (r *clubRepository) Update(ctx context.Context, club *Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}
