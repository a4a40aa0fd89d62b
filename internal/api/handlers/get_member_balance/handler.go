package get_member_balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TimetableService/internal/api/handlers"
	"github.com/m04kA/SMC-TimetableService/internal/service/members"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgNotFound        = "история баланса участника не найдена"
)

type Handler struct {
	service MemberService
	logger  Logger
}

func NewHandler(service MemberService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{memberId}/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	memberIDStr := vars["memberId"]
	memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/balance - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	result, err := h.service.GetBalance(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, members.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/balance - Invalid input: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidMemberID)

		case errors.Is(err, members.ErrBalanceNotFound):
			h.logger.Warn("GET /members/{id}/balance - Balance not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /members/{id}/balance - Failed to get balance: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/balance - Balance retrieved successfully: member_id=%d", memberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
