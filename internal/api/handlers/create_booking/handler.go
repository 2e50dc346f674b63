package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	createBooking "github.com/m04kA/HC-RoomService/internal/usecase/create_booking"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgRoomNotFound       = "комната не найдена"
	msgHostNotFound       = "пользователь не найден"
	msgRoomOffline        = "комната выведена из эксплуатации"
	msgGuestNotAdmitted   = "владелец комнаты не принимает гостей этого типа"
	msgNotAvailable       = "комната недоступна на выбранные даты"
)

type Handler struct {
	useCase CreateBookingUseCase
	norm    *timeutil.Normalizer
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, norm *timeutil.Normalizer, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		norm:    norm,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidRequest)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.norm, hostID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidData):
			h.logger.Warn("POST /bookings - Invalid data: host_id=%d, room_id=%d, error=%v", hostID, req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrHostNotFound):
			h.logger.Warn("POST /bookings - Host not found: host_id=%d", hostID)
			handlers.RespondNotFound(w, msgHostNotFound)

		case errors.Is(err, createBooking.ErrRoomOffline):
			h.logger.Warn("POST /bookings - Room offline: room_id=%d", req.RoomID)
			handlers.RespondError(w, http.StatusConflict, msgRoomOffline)

		case errors.Is(err, createBooking.ErrGuestNotAdmitted):
			h.logger.Warn("POST /bookings - Guest not admitted: host_id=%d, room_id=%d, guest_type=%s", hostID, req.RoomID, req.GuestType)
			handlers.RespondForbidden(w, msgGuestNotAdmitted)

		case errors.Is(err, createBooking.ErrNotAvailable):
			h.logger.Warn("POST /bookings - Room not available: room_id=%d, dates=%s..%s", req.RoomID, req.StartDate, req.EndDate)
			handlers.RespondError(w, http.StatusConflict, msgNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: host_id=%d, room_id=%d, error=%v", hostID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: interval_id=%d, room_id=%d, host_id=%d", result.IntervalID, result.RoomID, hostID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
