package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/catalog/domain"
)

// GormProductRepository stores the catalog in PostgreSQL
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Review{})
}

// SeedIfEmpty inserts the seed catalog when the products table has no rows
func (r *GormProductRepository) SeedIfEmpty(ctx context.Context, products []domain.Product, reviews []domain.Review) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(products) > 0 {
			for i := range products {
				products[i].Position = i
			}
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}
		if len(reviews) > 0 {
			if err := tx.Create(&reviews).Error; err != nil {
				return fmt.Errorf("failed to seed reviews: %w", err)
			}
		}
		return nil
	})
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("position").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).
		Select("*").Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, product.ID)
	}
	return nil
}

func (r *GormProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "in_stock": stock > 0})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, err
}

// GormReviewRepository stores reviews in PostgreSQL
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReviewNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) FindByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("date DESC, id").Find(&reviews).Error
	return reviews, err
}

func (r *GormReviewRepository) IncrementHelpful(ctx context.Context, id string) (*domain.Review, error) {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).
		UpdateColumn("helpful", gorm.Expr("helpful + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrReviewNotFound, id)
	}
	return r.FindByID(ctx, id)
}
