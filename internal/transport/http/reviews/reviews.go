package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	WriteReview(ctx context.Context, rv review.Review) (review.Review, float64, error)
	VendorReviews(ctx context.Context, vendorID int64) ([]review.Review, error)
}

var validate = validator.New()

type writeRequest struct {
	VendorID int64  `json:"vendorId" validate:"required,gt=0"`
	Rating   int    `json:"rating" validate:"required"`
	Content  string `json:"content"`
}

// WriteReview stores the authenticated customer's review and folds it into
// the vendor's rating.
func WriteReview(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for write review", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid review payload", err)

		return
	}

	stored, newRating, err := service.WriteReview(r.Context(), review.Review{
		CustomerID: claims.CustomerID,
		VendorID:   req.VendorID,
		Rating:     req.Rating,
		Content:    req.Content,
	})
	if err != nil {
		if errors.Is(err, review.ErrRatingOutOfRange) {
			resp.Error(w, http.StatusBadRequest, "Rating must be between 1 and 5", err)

			return
		}
		if errors.Is(err, vendor.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Vendor not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to write review", err)
		slog.Error("Error writing review", "vendor_id", req.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, map[string]interface{}{
		"review":       stored,
		"vendorRating": newRating,
	})
}

// VendorReviews lists one vendor's reviews, newest first.
func VendorReviews(w http.ResponseWriter, r *http.Request, service service) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorId"), 10, 64)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid vendor id", err)

		return
	}

	reviews, err := service.VendorReviews(r.Context(), vendorID)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch reviews", err)
		slog.Error("Error fetching vendor reviews", "vendor_id", vendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}
