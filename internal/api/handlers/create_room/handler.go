package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	roomsService "github.com/m04kA/HC-RoomService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные комнаты"
	msgSectionNotFound    = "секция не найдена"
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

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SectionID <= 0 || req.Number <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), req.SectionID, req.Number, req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, roomsService.ErrSectionNotFound):
			h.logger.Warn("POST /rooms - Section not found: section_id=%d", req.SectionID)
			handlers.RespondNotFound(w, msgSectionNotFound)

		case errors.Is(err, roomsService.ErrPersonNotFound):
			h.logger.Warn("POST /rooms - Owner not found: owner_id=%v", req.OwnerID)
			handlers.RespondNotFound(w, msgPersonNotFound)

		case errors.Is(err, roomsService.ErrOwnerHasRoom):
			h.logger.Warn("POST /rooms - Owner already has a room: owner_id=%v", req.OwnerID)
			handlers.RespondError(w, http.StatusConflict, msgOwnerHasRoom)

		default:
			h.logger.Error("POST /rooms - Failed: section_id=%d, error=%v", req.SectionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created: room_id=%d, section_id=%d", room.ID, req.SectionID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(room))
}
