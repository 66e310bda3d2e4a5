package getvendors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/service/services/catalogsvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	ListVendors(ctx context.Context, apartmentID int64) ([]vendor.Vendor, error)
	VendorWithReviews(ctx context.Context, vendorID int64, includeReviews bool) (*catalogsvc.VendorProfile, error)
}

var decoder = schema.NewDecoder()

type listQuery struct {
	ApartmentID int64 `schema:"apartmentId,required"`
}

// ListVendors returns vendors registered to an apartment.
func ListVendors(w http.ResponseWriter, r *http.Request, service service) {
	var q listQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	vendors, err := service.ListVendors(r.Context(), q.ApartmentID)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrNoVendors) {
			resp.Error(w, http.StatusNotFound, "No vendors found for this apartment", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to fetch vendors", err)
		slog.Error("Error listing vendors", "apartment_id", q.ApartmentID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"vendors": vendors})
}

// VendorProfile returns one vendor's public profile, optionally with reviews.
func VendorProfile(w http.ResponseWriter, r *http.Request, service service) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorId"), 10, 64)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid vendor id", err)

		return
	}

	includeReviews := r.URL.Query().Get("includeReviews") == "true"

	profile, err := service.VendorWithReviews(r.Context(), vendorID, includeReviews)
	if err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Vendor not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to fetch vendor", err)
		slog.Error("Error fetching vendor profile", "vendor_id", vendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, profile)
}
