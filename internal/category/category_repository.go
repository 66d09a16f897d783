package category

import (
	"context"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, clubID, id uint) (*Category, error)
	// FindByClubID lists the club's categories in (sort_order, id) order.
	// With activeOnly set, inactive categories are filtered out.
	FindByClubID(ctx context.Context, clubID uint, activeOnly bool) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	// DeleteWithVotes removes the category and every vote cast in it, scoped
	// to the owning club.
	DeleteWithVotes(ctx context.Context, category *Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, clubID, id uint) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).First(&category, "id = ? AND club_id = ?", id, clubID).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByClubID(ctx context.Context, clubID uint, activeOnly bool) ([]Category, error) {
	query := r.db.WithContext(ctx).Where("club_id = ?", clubID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var categories []Category
	err := query.Order("sort_order").Order("id").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) DeleteWithVotes(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM votes WHERE club_id = ? AND category_id = ?", category.ClubID, category.ID).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}
