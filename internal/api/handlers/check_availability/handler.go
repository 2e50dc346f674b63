package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	availabilityService "github.com/m04kA/HC-RoomService/internal/service/availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRoomID    = "некорректный идентификатор комнаты"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSpan      = "дата выезда должна быть позже даты заезда"
	msgInvalidGuestType = "некорректный тип гостя, ожидается stranger/known/member"
	msgRoomNotFound     = "комната не найдена"
)

type Handler struct {
	service AvailabilityService
	norm    *timeutil.Normalizer
	logger  Logger
}

func NewHandler(service AvailabilityService, norm *timeutil.Normalizer, logger Logger) *Handler {
	return &Handler{
		service: service,
		norm:    norm,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	startDate, err := h.norm.ParseDate(query.Get("startDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := h.norm.ParseDate(query.Get("endDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	guestType, err := parseGuestType(query.Get("guestType"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidGuestType)
		return
	}

	available, err := h.service.IsRoomAvailable(r.Context(), roomID, availabilityService.SearchQuery{
		Start:     h.norm.CheckIn(startDate),
		End:       h.norm.CheckOut(endDate),
		GuestType: guestType,
	})
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{roomId}/availability/check - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, availabilityService.ErrInvalidSpan):
			handlers.RespondBadRequest(w, msgInvalidSpan)

		default:
			h.logger.Error("GET /rooms/{roomId}/availability/check - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckAvailabilityResponse{
		RoomID:    roomID,
		StartDate: startDate.Format(timeutil.DateFormat),
		EndDate:   endDate.Format(timeutil.DateFormat),
		GuestType: guestType.String(),
		Available: available,
	})
}
