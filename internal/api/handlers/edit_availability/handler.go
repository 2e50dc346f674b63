package edit_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	editAvailability "github.com/m04kA/HC-RoomService/internal/usecase/edit_availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIntervalID  = "некорректный идентификатор окна доступности"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные окна доступности"
	msgIntervalNotFound   = "окно доступности не найдено"
	msgNotAvailability    = "интервал не является окном доступности"
	msgAccessDenied       = "доступность комнаты меняет только её владелец"
)

type Handler struct {
	useCase EditAvailabilityUseCase
	norm    *timeutil.Normalizer
	logger  Logger
}

func NewHandler(useCase EditAvailabilityUseCase, norm *timeutil.Normalizer, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		norm:    norm,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/{intervalId}
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

	var req EditAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{intervalId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.norm, intervalID, callerID)
	if err != nil {
		h.logger.Warn("PUT /availability/{intervalId} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editAvailability.ErrInvalidData):
			h.logger.Warn("PUT /availability/{intervalId} - Invalid data: interval_id=%d, error=%v", intervalID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, editAvailability.ErrIntervalNotFound):
			h.logger.Warn("PUT /availability/{intervalId} - Not found: interval_id=%d", intervalID)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, editAvailability.ErrNotAvailability):
			h.logger.Warn("PUT /availability/{intervalId} - Not an availability window: interval_id=%d", intervalID)
			handlers.RespondBadRequest(w, msgNotAvailability)

		case errors.Is(err, editAvailability.ErrAccessDenied):
			h.logger.Warn("PUT /availability/{intervalId} - Access denied: interval_id=%d, caller_id=%d", intervalID, callerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /availability/{intervalId} - Failed: interval_id=%d, error=%v", intervalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{intervalId} - Availability edited: interval_id=%d, displaced=%d, reassigned=%d",
		intervalID, result.DisplacedGuests, result.ReassignedGuests)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
