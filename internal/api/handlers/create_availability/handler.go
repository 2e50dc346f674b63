package create_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	createAvailability "github.com/m04kA/HC-RoomService/internal/usecase/create_availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomID      = "некорректный идентификатор комнаты"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные окна доступности"
	msgRoomNotFound       = "комната не найдена"
	msgRoomOffline        = "комната выведена из эксплуатации"
	msgAccessDenied       = "доступность комнаты меняет только её владелец"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	norm    *timeutil.Normalizer
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, norm *timeutil.Normalizer, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		norm:    norm,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/{roomId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAccessDenied)
		return
	}

	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/{roomId}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.norm, roomID, callerID)
	if err != nil {
		h.logger.Warn("POST /rooms/{roomId}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrInvalidData):
			h.logger.Warn("POST /rooms/{roomId}/availability - Invalid data: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createAvailability.ErrRoomNotFound):
			h.logger.Warn("POST /rooms/{roomId}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createAvailability.ErrRoomOffline):
			h.logger.Warn("POST /rooms/{roomId}/availability - Room offline: room_id=%d", roomID)
			handlers.RespondError(w, http.StatusConflict, msgRoomOffline)

		case errors.Is(err, createAvailability.ErrAccessDenied):
			h.logger.Warn("POST /rooms/{roomId}/availability - Access denied: room_id=%d, caller_id=%d", roomID, callerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /rooms/{roomId}/availability - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/{roomId}/availability - Availability declared: interval_id=%d, room_id=%d", result.IntervalID, roomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
