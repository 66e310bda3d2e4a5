package signup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	SignupCustomer(ctx context.Context, c customer.Customer) (customer.Customer, string, error)
	SignupVendor(ctx context.Context, v vendor.Vendor) (vendor.Vendor, string, error)
}

var validate = validator.New()

type customerRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	ApartmentID int64  `json:"apartmentId" validate:"required,gt=0"`
}

// Customer registers a new customer account and returns a minted token.
func Customer(w http.ResponseWriter, r *http.Request, service service) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for customer signup", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid signup payload", err)

		return
	}

	c, token, err := service.SignupCustomer(r.Context(), customer.Customer{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		ApartmentID: req.ApartmentID,
	})
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to sign up customer", err)
		slog.Error("Error signing up customer", "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, map[string]interface{}{
		"customer": c,
		"token":    token,
	})
}

type vendorRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	ApartmentID int64  `json:"apartmentId" validate:"required,gt=0"`
	FSSAI       string `json:"fssai"`
	Email       string `json:"email" validate:"omitempty,email"`
	Note        string `json:"note"`
}

// Vendor registers a new vendor account and returns a minted token.
func Vendor(w http.ResponseWriter, r *http.Request, service service) {
	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for vendor signup", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid signup payload", err)

		return
	}

	v, token, err := service.SignupVendor(r.Context(), vendor.Vendor{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		ApartmentID: req.ApartmentID,
		FSSAI:       req.FSSAI,
		Email:       req.Email,
		Note:        req.Note,
	})
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to sign up vendor", err)
		slog.Error("Error signing up vendor", "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, map[string]interface{}{
		"vendor": v,
		"token":  token,
	})
}
