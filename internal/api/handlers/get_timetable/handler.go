package get_timetable

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimetableService/internal/api/handlers"
	"github.com/m04kA/SMC-TimetableService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetTimetableUseCase
	logger  Logger
}

func NewHandler(useCase GetTimetableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/timetable
// Query params: date (optional, YYYY-MM-DD; по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /timetable - Invalid date format: date=%q, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidGridConfig):
			h.logger.Error("GET /timetable - Invalid grid configuration: %v", err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("GET /timetable - Failed to build timetable: date=%q, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /timetable - Timetable built successfully: date=%s, boxes=%d, skipped=%d",
		response.Date, len(response.Boxes), len(response.Skipped))
	handlers.RespondJSON(w, http.StatusOK, response)
}
