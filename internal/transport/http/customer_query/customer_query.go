package customerquery

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	CustomerQuery(ctx context.Context, customerID int64, query string) error
}

var validate = validator.New()

type request struct {
	Query string `json:"query" validate:"required"`
}

// CustomerQuery records a support query and forwards it to the support
// mailbox.
func CustomerQuery(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for customer query", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query payload", err)

		return
	}

	if err := service.CustomerQuery(r.Context(), claims.CustomerID, req.Query); err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to submit query", err)
		slog.Error("Error submitting customer query", "customer_id", claims.CustomerID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Query submitted"})
}
