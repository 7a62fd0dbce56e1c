package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/sif/internal/api"
	"github.com/dukerupert/sif/internal/domain"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// ReviewAPI is the backend surface the service needs. *api.Client satisfies it.
type ReviewAPI interface {
	ListReviews(ctx context.Context, productID int64) ([]domain.Review, error)
	GetReviewStats(ctx context.Context, productID int64) (*domain.ReviewStats, error)
	CreateReview(ctx context.Context, params api.CreateReviewParams) (*domain.Review, error)
	UpdateReview(ctx context.Context, reviewID int64, params api.UpdateReviewParams) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID int64) error
}

// =============================================================================
// REQUESTS
// =============================================================================

// SubmitRequest is a new review as entered by the customer.
type SubmitRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"required,max=120"`
	Comment   string `json:"comment" validate:"required,max=2000"`
}

// EditRequest updates an existing review.
type EditRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=120"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// =============================================================================
// SERVICE
// =============================================================================

// Service validates review input locally before handing it to the backend.
type Service struct {
	api      ReviewAPI
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(reviewAPI ReviewAPI, logger *slog.Logger) *Service {
	return &Service{
		api:      reviewAPI,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "review"),
	}
}

// List returns all reviews for a product, newest first.
func (s *Service) List(ctx context.Context, productID int64) ([]domain.Review, error) {
	const op = "review.list"
	if productID <= 0 {
		return nil, domain.Invalid(op, "Invalid product ID")
	}
	reviews, err := s.api.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Stats returns the aggregate rating breakdown for a product.
func (s *Service) Stats(ctx context.Context, productID int64) (*domain.ReviewStats, error) {
	const op = "review.stats"
	if productID <= 0 {
		return nil, domain.Invalid(op, "Invalid product ID")
	}
	return s.api.GetReviewStats(ctx, productID)
}

// Submit posts a new review. The caller must be authenticated; the backend
// enforces one review per customer per product.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.Review, error) {
	const op = "review.submit"

	if !domain.IsAuthenticated(ctx) {
		return nil, domain.ErrNotAuthenticated
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(op, err)
	}

	created, err := s.api.CreateReview(ctx, api.CreateReviewParams{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		"product_id", created.ProductID,
		"review_id", created.ID,
		"rating", created.Rating)
	return created, nil
}

// Edit updates a review the customer already wrote.
func (s *Service) Edit(ctx context.Context, reviewID int64, req EditRequest) (*domain.Review, error) {
	const op = "review.edit"

	if !domain.IsAuthenticated(ctx) {
		return nil, domain.ErrNotAuthenticated
	}
	if reviewID <= 0 {
		return nil, domain.Invalid(op, "Invalid review ID")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(op, err)
	}

	return s.api.UpdateReview(ctx, reviewID, api.UpdateReviewParams{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
}

// Delete removes the customer's own review.
func (s *Service) Delete(ctx context.Context, reviewID int64) error {
	const op = "review.delete"

	if !domain.IsAuthenticated(ctx) {
		return domain.ErrNotAuthenticated
	}
	if reviewID <= 0 {
		return domain.Invalid(op, "Invalid review ID")
	}
	if err := s.api.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	s.logger.Info("review deleted", "review_id", reviewID)
	return nil
}

// validationError converts validator output into field-level domain errors.
func validationError(op string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Invalid(op, err.Error())
	}

	var out error
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := "failed " + fe.Tag() + " validation"
		if field == "rating" && (fe.Tag() == "min" || fe.Tag() == "max") {
			msg = domain.ErrInvalidRating.Message
		}
		out = domain.AddFieldError(out, field, msg)
	}
	if ve, ok := out.(*domain.ValidationError); ok {
		ve.Op = op
	}
	return out
}
