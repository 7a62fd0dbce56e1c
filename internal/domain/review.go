package domain

import (
	"time"
)

// Review is a customer product review.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewStats aggregates ratings for a product.
type ReviewStats struct {
	ProductID     int64       `json:"product_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"distribution"` // star (1-5) -> count
}

// Review-specific errors.
var (
	ErrReviewNotFound  = &Error{Code: ENOTFOUND, Message: "Review not found"}
	ErrDuplicateReview = &Error{Code: ECONFLICT, Message: "You have already reviewed this product"}
	ErrInvalidRating   = &Error{Code: EINVALID, Message: "Rating must be between 1 and 5"}
)
