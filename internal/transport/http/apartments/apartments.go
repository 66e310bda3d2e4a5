package apartments

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	ListApartments(ctx context.Context) ([]apartment.Apartment, error)
	SaveApartment(ctx context.Context, a apartment.Apartment) (apartment.Apartment, error)
	SearchApartments(ctx context.Context, fragment string, limit int) ([]apartment.Apartment, error)
}

var (
	validate = validator.New()
	decoder  = schema.NewDecoder()
)

const searchLimit = 15

// ListApartments returns every registered apartment.
func ListApartments(w http.ResponseWriter, r *http.Request, service service) {
	apartments, err := service.ListApartments(r.Context())
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch apartments", err)
		slog.Error("Error listing apartments", "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"apartments": apartments})
}

type saveRequest struct {
	Name      string  `json:"name" validate:"required"`
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Pincode   string  `json:"pincode" validate:"required"`
}

// SaveApartment registers a new apartment.
func SaveApartment(w http.ResponseWriter, r *http.Request, service service) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for save apartment", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid apartment payload", err)

		return
	}

	saved, err := service.SaveApartment(r.Context(), apartment.Apartment{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Pincode:   req.Pincode,
	})
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to save apartment", err)
		slog.Error("Error saving apartment", "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, saved)
}

type searchQuery struct {
	Name string `schema:"name,required"`
}

// SearchApartments returns apartments whose name contains the fragment. The
// fragment must be at least three characters to keep results meaningful.
func SearchApartments(w http.ResponseWriter, r *http.Request, service service) {
	var q searchQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	if len(q.Name) < 3 {
		resp.Error(w, http.StatusBadRequest, "Search fragment must be at least 3 characters", nil)

		return
	}

	apartments, err := service.SearchApartments(r.Context(), q.Name, searchLimit)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to search apartments", err)
		slog.Error("Error searching apartments", "fragment", q.Name, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"apartments": apartments})
}
