package domain

import (
	"context"
	"errors"
)

// Product categories. "all" is not a category but the unfiltered view.
const (
	CategoryAll       = "all"
	CategorySeedlings = "seedlings"
	CategoryCoffee    = "coffee"
)

// Seedling difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Coffee roast levels
const (
	RoastLight  = "light"
	RoastMedium = "medium"
	RoastDark   = "dark"
)

// ErrProductNotFound is returned when no product has the requested id
var ErrProductNotFound = errors.New("product not found")

// Product represents a catalog entry. Prices are in the smallest currency unit.
type Product struct {
	ID            string   `json:"id" yaml:"id" gorm:"primaryKey"`
	Name          string   `json:"name" yaml:"name" gorm:"not null"`
	Price         int64    `json:"price" yaml:"price" gorm:"not null"`
	OriginalPrice *int64   `json:"originalPrice,omitempty" yaml:"originalPrice"`
	Category      string   `json:"category" yaml:"category" gorm:"index"`
	Subcategory   string   `json:"subcategory" yaml:"subcategory"`
	Image         string   `json:"image" yaml:"image"`
	Description   string   `json:"description" yaml:"description"`
	Difficulty    string   `json:"difficulty,omitempty" yaml:"difficulty"`
	RoastLevel    string   `json:"roastLevel,omitempty" yaml:"roastLevel"`
	Origin        string   `json:"origin,omitempty" yaml:"origin"`
	Organic       bool     `json:"organic,omitempty" yaml:"organic"`
	Bloom         string   `json:"bloom,omitempty" yaml:"bloom"`
	Sunlight      string   `json:"sunlight,omitempty" yaml:"sunlight"`
	InStock       bool     `json:"inStock" yaml:"inStock"`
	Stock         *int     `json:"stock,omitempty" yaml:"stock"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Reviews       int      `json:"reviews" yaml:"reviews"`
	Tags          []string `json:"tags,omitempty" yaml:"tags" gorm:"serializer:json"`
	Discount      *int     `json:"discount,omitempty" yaml:"discount"`

	// Position is the catalog order for backends without an inherent order
	Position int `json:"-" yaml:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if product can be added to a cart
func (p *Product) IsAvailable() bool {
	if p.Stock != nil {
		return p.InStock && *p.Stock > 0
	}
	return p.InStock
}

// SetStock records a tracked stock level and keeps InStock consistent with it
func (p *Product) SetStock(stock int) {
	p.Stock = &stock
	p.InStock = stock > 0
}

// Clone returns a deep copy so callers can't mutate repository state
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.Stock != nil {
		v := *p.Stock
		c.Stock = &v
	}
	if p.Discount != nil {
		v := *p.Discount
		c.Discount = &v
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	Count(ctx context.Context) (int64, error)
}
