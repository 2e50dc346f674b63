package update_room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	roomsService "github.com/m04kA/HC-RoomService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomID      = "некорректный идентификатор комнаты"
	msgConflictingOwner   = "нельзя одновременно назначить и снять владельца"
	msgRoomNotFound       = "комната не найдена"
	msgPersonNotFound     = "владелец не найден"
	msgOwnerHasRoom       = "у владельца уже есть комната"
)

type Handler struct {
	service RoomsService
	logger  Logger
}

func NewHandler(service RoomsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rooms/{roomId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.OwnerID != nil && req.ClearOwner {
		handlers.RespondBadRequest(w, msgConflictingOwner)
		return
	}

	if req.OwnerID != nil || req.ClearOwner {
		if err := h.service.AssignOwner(r.Context(), roomID, req.OwnerID); err != nil {
			h.respondServiceError(w, roomID, err)
			return
		}
	}

	if req.Offline != nil {
		if err := h.service.SetRoomOffline(r.Context(), roomID, *req.Offline); err != nil {
			h.respondServiceError(w, roomID, err)
			return
		}
	}

	h.logger.Info("PATCH /rooms/{roomId} - Room updated: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, UpdateRoomResponse{RoomID: roomID})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, roomID int64, err error) {
	switch {
	case errors.Is(err, roomsService.ErrRoomNotFound):
		h.logger.Warn("PATCH /rooms/{roomId} - Room not found: room_id=%d", roomID)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, roomsService.ErrPersonNotFound):
		h.logger.Warn("PATCH /rooms/{roomId} - Owner not found: room_id=%d", roomID)
		handlers.RespondNotFound(w, msgPersonNotFound)

	case errors.Is(err, roomsService.ErrOwnerHasRoom):
		h.logger.Warn("PATCH /rooms/{roomId} - Owner already has a room: room_id=%d", roomID)
		handlers.RespondError(w, http.StatusConflict, msgOwnerHasRoom)

	default:
		h.logger.Error("PATCH /rooms/{roomId} - Failed: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
	}
}
