package verifycontact

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	SendOTP(ctx context.Context, phoneNumber string) (string, error)
	VerifyOTP(ctx context.Context, phoneNumber, code string) (bool, error)
}

var validate = validator.New()

type sendRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

// SendOTP dispatches a verification code to the given phone number.
func SendOTP(w http.ResponseWriter, r *http.Request, service service) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for send otp", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid phone number", err)

		return
	}

	code, err := service.SendOTP(r.Context(), req.PhoneNumber)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to send verification code", err)
		slog.Error("Error sending otp", "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{
		"message": "Verification code sent",
		"otp":     code,
	})
}

type verifyRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	OTP         string `json:"otp" validate:"required,len=4,numeric"`
}

// VerifyOTP checks a submitted code and consumes it on success.
func VerifyOTP(w http.ResponseWriter, r *http.Request, service service) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for verify otp", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid verification payload", err)

		return
	}

	verified, err := service.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to verify code", err)
		slog.Error("Error verifying otp", "error", err)

		return
	}
	if !verified {
		resp.Error(w, http.StatusBadRequest, "Incorrect or expired verification code", nil)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"verified": true})
}
