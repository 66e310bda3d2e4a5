package deleteexpired

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	Sweep(ctx context.Context, now time.Time) error
}

// DeleteExpiredFood runs the expired food item sweep on demand.
func DeleteExpiredFood(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.Sweep(r.Context(), time.Now()); err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to sweep expired food items", err)
		slog.Error("Error sweeping expired food items", "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Expired food items processed"})
}
