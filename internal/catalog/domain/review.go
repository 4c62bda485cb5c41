package domain

import (
	"cmp"
	"context"
	"errors"
	"slices"
)

// ErrReviewNotFound is returned when no review has the requested id
var ErrReviewNotFound = errors.New("review not found")

// ReviewDateLayout is the calendar-date format used for Review.Date
const ReviewDateLayout = "2006-01-02"

// Review represents a customer review of a product
type Review struct {
	ID        string `json:"id" yaml:"id" gorm:"primaryKey"`
	ProductID string `json:"productId" yaml:"productId" gorm:"not null;index"`
	UserName  string `json:"userName" yaml:"userName"`
	Rating    int    `json:"rating" yaml:"rating"`
	Comment   string `json:"comment" yaml:"comment"`
	Date      string `json:"date" yaml:"date"`
	Helpful   int    `json:"helpful" yaml:"helpful"`
	Verified  bool   `json:"verified" yaml:"verified"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// SortReviews orders reviews newest first, ties broken by id.
// Review repositories return FindByProductID results in this order.
func SortReviews(reviews []Review) {
	slices.SortFunc(reviews, func(a, b Review) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// ReviewSummary contains aggregate review statistics for a product
type ReviewSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalCount    int     `json:"totalCount"`
}

// Summarize computes the average rating and count of a set of reviews
func Summarize(reviews []Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return ReviewSummary{
		AverageRating: float64(total) / float64(len(reviews)),
		TotalCount:    len(reviews),
	}
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByProductID(ctx context.Context, productID string) ([]Review, error)
	IncrementHelpful(ctx context.Context, id string) (*Review, error)
}
