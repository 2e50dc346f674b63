package update_preference

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	roomsService "github.com/m04kA/HC-RoomService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPersonID    = "некорректный идентификатор пользователя"
	msgInvalidPreference  = "некорректное предпочтение, ожидается anyone/known/members"
	msgPersonNotFound     = "пользователь не найден"
	msgAccessDenied       = "предпочтение меняет только сам пользователь"
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

// Handle PUT /api/v1/persons/{personId}/preference
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAccessDenied)
		return
	}

	personID, err := strconv.ParseInt(mux.Vars(r)["personId"], 10, 64)
	if err != nil || personID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidPersonID)
		return
	}

	if personID != callerID {
		h.logger.Warn("PUT /persons/{personId}/preference - Access denied: person_id=%d, caller_id=%d", personID, callerID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdatePreferenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /persons/{personId}/preference - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pref, err := parsePreference(req.Preference)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPreference)
		return
	}

	if err := h.service.UpdatePreference(r.Context(), personID, pref); err != nil {
		switch {
		case errors.Is(err, roomsService.ErrInvalidPreference):
			handlers.RespondBadRequest(w, msgInvalidPreference)

		case errors.Is(err, roomsService.ErrPersonNotFound):
			h.logger.Warn("PUT /persons/{personId}/preference - Person not found: person_id=%d", personID)
			handlers.RespondNotFound(w, msgPersonNotFound)

		default:
			h.logger.Error("PUT /persons/{personId}/preference - Failed: person_id=%d, error=%v", personID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /persons/{personId}/preference - Preference updated: person_id=%d, preference=%s", personID, req.Preference)
	handlers.RespondJSON(w, http.StatusOK, UpdatePreferenceResponse{
		PersonID:   personID,
		Preference: req.Preference,
	})
}
