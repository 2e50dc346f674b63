package resize_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	bookingsService "github.com/m04kA/HC-RoomService/internal/service/bookings"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIntervalID  = "некорректный идентификатор брони"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSpan        = "дата выезда должна быть позже даты заезда"
	msgIntervalNotFound   = "бронь не найдена"
	msgNotOccupancy       = "интервал не является бронью"
	msgAccessDenied       = "нет прав на изменение этой брони"
	msgResizeConflict     = "расширение брони упирается в занятость или границу доступности"
)

type Handler struct {
	service BookingsService
	norm    *timeutil.Normalizer
	logger  Logger
}

func NewHandler(service BookingsService, norm *timeutil.Normalizer, logger Logger) *Handler {
	return &Handler{
		service: service,
		norm:    norm,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{intervalId}
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

	var req ResizeBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{intervalId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.norm, intervalID, callerID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{intervalId} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Resize(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidSpan):
			handlers.RespondBadRequest(w, msgInvalidSpan)

		case errors.Is(err, bookingsService.ErrIntervalNotFound):
			h.logger.Warn("PATCH /bookings/{intervalId} - Not found: interval_id=%d", intervalID)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, bookingsService.ErrNotOccupancy):
			h.logger.Warn("PATCH /bookings/{intervalId} - Not an occupancy: interval_id=%d", intervalID)
			handlers.RespondBadRequest(w, msgNotOccupancy)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{intervalId} - Access denied: interval_id=%d, caller_id=%d", intervalID, callerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrResizeConflict):
			h.logger.Warn("PATCH /bookings/{intervalId} - Resize conflict: interval_id=%d", intervalID)
			handlers.RespondError(w, http.StatusConflict, msgResizeConflict)

		default:
			h.logger.Error("PATCH /bookings/{intervalId} - Failed: interval_id=%d, error=%v", intervalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{intervalId} - Booking resized: interval_id=%d, caller_id=%d", intervalID, callerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
