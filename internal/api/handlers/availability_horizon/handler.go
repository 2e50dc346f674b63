package availability_horizon

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	availabilityService "github.com/m04kA/HC-RoomService/internal/service/availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRoomID = "некорректный идентификатор комнаты"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomId}/availability/horizon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Без параметра горизонт считается от текущего момента
	from := h.norm.InZone(time.Now())
	if raw := r.URL.Query().Get("from"); raw != "" {
		fromDate, err := h.norm.ParseDate(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = h.norm.CheckIn(fromDate)
	}

	horizon, err := h.service.LastAvailableThrough(r.Context(), roomID, from)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{roomId}/availability/horizon - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{roomId}/availability/horizon - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := HorizonResponse{
		RoomID: roomID,
		From:   from.Format(timeutil.DateFormat),
	}
	if horizon != nil {
		resp.Available = true
		formatted := horizon.Format(timeutil.DateFormat)
		resp.AvailableThrough = &formatted
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
