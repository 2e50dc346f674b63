package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	deleteAvailability "github.com/m04kA/HC-RoomService/internal/usecase/delete_availability"
)

const (
	msgInvalidIntervalID = "некорректный идентификатор окна доступности"
	msgIntervalNotFound  = "окно доступности не найдено"
	msgNotAvailability   = "интервал не является окном доступности"
	msgAccessDenied      = "доступность комнаты меняет только её владелец"
)

type Handler struct {
	useCase DeleteAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability/{intervalId}
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

	result, err := h.useCase.Execute(r.Context(), deleteAvailability.Request{
		IntervalID: intervalID,
		CallerID:   callerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, deleteAvailability.ErrInvalidData):
			handlers.RespondBadRequest(w, msgInvalidIntervalID)

		case errors.Is(err, deleteAvailability.ErrIntervalNotFound):
			h.logger.Warn("DELETE /availability/{intervalId} - Not found: interval_id=%d", intervalID)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, deleteAvailability.ErrNotAvailability):
			h.logger.Warn("DELETE /availability/{intervalId} - Not an availability window: interval_id=%d", intervalID)
			handlers.RespondBadRequest(w, msgNotAvailability)

		case errors.Is(err, deleteAvailability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{intervalId} - Access denied: interval_id=%d, caller_id=%d", intervalID, callerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /availability/{intervalId} - Failed: interval_id=%d, error=%v", intervalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{intervalId} - Availability revoked: interval_id=%d, displaced=%d, reassigned=%d",
		intervalID, result.DisplacedGuests, result.ReassignedGuests)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
