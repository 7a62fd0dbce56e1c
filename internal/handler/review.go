package handler

import (
	"net/http"

	"github.com/dukerupert/sif/internal/review"
)

// ReviewHandler serves product review endpoints.
type ReviewHandler struct {
	reviews *review.Service
}

func NewReviewHandler(svc *review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: svc}
}

// List handles GET /api/products/{id}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	reviews, err := h.reviews.List(r.Context(), productID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// Stats handles GET /api/products/{id}/reviews/stats.
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	stats, err := h.reviews.Stats(r.Context(), productID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, stats)
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req review.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	created, err := h.reviews.Submit(r.Context(), req)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req review.EditRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	updated, err := h.reviews.Edit(r.Context(), reviewID, req)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.reviews.Delete(r.Context(), reviewID); err != nil {
		RespondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
