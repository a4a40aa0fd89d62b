package get_member_balance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TimetableService/internal/service/members"
	"github.com/m04kA/SMC-TimetableService/internal/service/members/models"
	"github.com/m04kA/SMC-TimetableService/pkg/logger"
)

type serviceStub struct {
	resp *models.BalanceResponse
	err  error
}

func (s *serviceStub) GetBalance(context.Context, int64) (*models.BalanceResponse, error) {
	return s.resp, s.err
}

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/members/{memberId}/balance", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandler_Handle(t *testing.T) {
	stub := &serviceStub{resp: &models.BalanceResponse{MemberID: 20, Balance: 12000, BalanceText: "12,000원"}}

	w := serve(NewHandler(stub, logger.NewNop()), "/api/v1/members/20/balance")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"memberId":20,"balance":12000,"balanceText":"12,000원","isNegative":false}`, w.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "not a number", url: "/api/v1/members/abc/balance", wantStatus: http.StatusBadRequest},
		{name: "invalid id", url: "/api/v1/members/0/balance", err: members.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "no history", url: "/api/v1/members/7/balance", err: members.ErrBalanceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", url: "/api/v1/members/7/balance", err: members.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewHandler(&serviceStub{err: tt.err}, logger.NewNop()), tt.url)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
