package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	bookingsService "github.com/m04kA/HC-RoomService/internal/service/bookings"
)

const (
	msgInvalidIntervalID = "некорректный идентификатор брони"
	msgIntervalNotFound  = "бронь не найдена"
	msgNotOccupancy      = "интервал не является бронью"
	msgAccessDenied      = "нет прав на отмену этой брони"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{intervalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAccessDenied)
		return
	}

	intervalID, err := strconv.ParseInt(mux.Vars(r)["intervalId"], 10, 64)
	if err != nil || intervalID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidIntervalID)
		return
	}

	if err := h.service.Delete(r.Context(), intervalID, callerID); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrIntervalNotFound):
			h.logger.Warn("DELETE /bookings/{intervalId} - Not found: interval_id=%d", intervalID)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, bookingsService.ErrNotOccupancy):
			h.logger.Warn("DELETE /bookings/{intervalId} - Not an occupancy: interval_id=%d", intervalID)
			handlers.RespondBadRequest(w, msgNotOccupancy)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{intervalId} - Access denied: interval_id=%d, caller_id=%d", intervalID, callerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /bookings/{intervalId} - Failed: interval_id=%d, error=%v", intervalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{intervalId} - Booking deleted: interval_id=%d, caller_id=%d", intervalID, callerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
