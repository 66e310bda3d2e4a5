package checkuser

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
	CheckCustomer(ctx context.Context, phoneNumber string) (*customer.Customer, string, error)
	CheckVendor(ctx context.Context, phoneNumber string) (*vendor.Vendor, string, error)
}

var validate = validator.New()

type request struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

// Customer reports whether a phone number has a customer account, minting a
// fresh token when it does.
func Customer(w http.ResponseWriter, r *http.Request, service service) {
	req, ok := decode(w, r)
	if !ok {
		return
	}

	c, token, err := service.CheckCustomer(r.Context(), req.PhoneNumber)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to check customer", err)
		slog.Error("Error checking customer", "error", err)

		return
	}
	if c == nil {
		resp.JSON(w, http.StatusOK, map[string]interface{}{"exists": false})

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{
		"exists":   true,
		"customer": c,
		"token":    token,
	})
}

// Vendor reports whether a phone number has a vendor account, minting a fresh
// token when it does.
func Vendor(w http.ResponseWriter, r *http.Request, service service) {
	req, ok := decode(w, r)
	if !ok {
		return
	}

	v, token, err := service.CheckVendor(r.Context(), req.PhoneNumber)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to check vendor", err)
		slog.Error("Error checking vendor", "error", err)

		return
	}
	if v == nil {
		resp.JSON(w, http.StatusOK, map[string]interface{}{"exists": false})

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{
		"exists": true,
		"vendor": v,
		"token":  token,
	})
}

func decode(w http.ResponseWriter, r *http.Request) (request, bool) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for check user", "error", err)

		return request{}, false
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid phone number", err)

		return request{}, false
	}

	return req, true
}
