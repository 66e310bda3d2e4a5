package accountdetails

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/service/services/catalogsvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// accountService is an interface for the account service layer.
type accountService interface {
	CustomerDetails(ctx context.Context, customerID int64) (*customer.Customer, *apartment.Apartment, error)
	UpdateVendorDetails(ctx context.Context, vendorID int64, email, note string) error
}

// catalogService is an interface for the catalog service layer.
type catalogService interface {
	VendorWithReviews(ctx context.Context, vendorID int64, includeReviews bool) (*catalogsvc.VendorProfile, error)
}

var validate = validator.New()

// CustomerDetails returns the authenticated customer's profile with their
// apartment.
func CustomerDetails(w http.ResponseWriter, r *http.Request, service accountService) {
	claims := authmw.ClaimsFromContext(r.Context())

	c, a, err := service.CustomerDetails(r.Context(), claims.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Customer not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to fetch account details", err)
		slog.Error("Error fetching customer details", "customer_id", claims.CustomerID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{
		"customer":  c,
		"apartment": a,
	})
}

// VendorDetails returns the authenticated vendor's own profile with reviews.
func VendorDetails(w http.ResponseWriter, r *http.Request, service catalogService) {
	claims := authmw.ClaimsFromContext(r.Context())

	profile, err := service.VendorWithReviews(r.Context(), claims.VendorID, true)
	if err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Vendor not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to fetch account details", err)
		slog.Error("Error fetching vendor details", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, profile)
}

type updateVendorRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Note  string `json:"note"`
}

// UpdateVendorDetails overwrites the authenticated vendor's contact details.
func UpdateVendorDetails(w http.ResponseWriter, r *http.Request, service accountService) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req updateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for update vendor details", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid vendor details payload", err)

		return
	}

	if err := service.UpdateVendorDetails(r.Context(), claims.VendorID, req.Email, req.Note); err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to update vendor details", err)
		slog.Error("Error updating vendor details", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Vendor details updated"})
}
