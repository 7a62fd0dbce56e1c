package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// CreateReviewParams is the payload for posting a review.
type CreateReviewParams struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// UpdateReviewParams is the payload for editing a review.
type UpdateReviewParams struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ListReviews fetches all reviews for a product, newest first.
func (c *Client) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	path := fmt.Sprintf("/products/%d/reviews", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReviewStats fetches the aggregated rating data for a product.
func (c *Client) GetReviewStats(ctx context.Context, productID int64) (*domain.ReviewStats, error) {
	var stats domain.ReviewStats
	path := fmt.Sprintf("/products/%d/reviews/stats", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateReview posts a review. A second review for the same product is
// reported as ErrDuplicateReview.
func (c *Client) CreateReview(ctx context.Context, params CreateReviewParams) (*domain.Review, error) {
	var review domain.Review
	path := fmt.Sprintf("/products/%d/reviews", params.ProductID)
	if err := c.do(ctx, http.MethodPost, path, params, &review); err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}
	return &review, nil
}

// UpdateReview edits one of the signed-in user's reviews.
func (c *Client) UpdateReview(ctx context.Context, reviewID int64, params UpdateReviewParams) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/reviews/%d", reviewID), params, &review); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes one of the signed-in user's reviews.
func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), nil, nil)
	if err != nil && domain.IsCode(err, domain.ENOTFOUND) {
		return domain.ErrReviewNotFound
	}
	return err
}
