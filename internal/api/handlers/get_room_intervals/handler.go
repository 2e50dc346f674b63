package get_room_intervals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	bookingsService "github.com/m04kA/HC-RoomService/internal/service/bookings"
)

const (
	msgInvalidRoomID = "некорректный идентификатор комнаты"
	msgInvalidKind   = "некорректный вид интервала, ожидается availability/occupancy"
	msgRoomNotFound  = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomId}/intervals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	kind, err := parseKind(r.URL.Query().Get("kind"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	list, err := h.service.GetRoomIntervals(r.Context(), roomID, kind)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{roomId}/intervals - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{roomId}/intervals - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceIntervals(roomID, list))
}
