// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/catalog-importer/internal/database"
	"github.com/javajoker/catalog-importer/internal/models"
)

// ProductStore is the write side the import pipelines need. Each call is a
// single atomic write; pipelines running concurrently share no transaction.
type ProductStore interface {
	// UpsertByTitle updates the scraped columns of the product with the same
	// title, or inserts it when none exists.
	UpsertByTitle(ctx context.Context, product *models.Product) error
	// CreateWithImage always inserts a new product together with its image.
	CreateWithImage(ctx context.Context, product *models.Product, imageURL string) error
}

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) UpsertByTitle(ctx context.Context, product *models.Product) error {
	if product.Title == "" {
		return errors.New("product title is required")
	}

	err := s.db.WithContext(ctx).
		Where(models.Product{Title: product.Title}).
		Assign(map[string]interface{}{
			"price":        product.Price,
			"category":     product.Category,
			"description":  product.Description,
			"image_url":    product.ImageURL,
			"availability": product.Availability,
		}).
		FirstOrCreate(product).Error
	if err != nil {
		return fmt.Errorf("failed to upsert product %q: %w", product.Title, err)
	}
	return nil
}

func (s *ProductService) CreateWithImage(ctx context.Context, product *models.Product, imageURL string) error {
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Omit("Image").Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		image := &models.Image{ProductID: product.ID, URL: imageURL}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create product image: %w", err)
		}

		product.Image = image
		return nil
	})
}

func (s *ProductService) FindByTitle(ctx context.Context, title string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("Image").Where("title = ?", title).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}
	return count, nil
}
