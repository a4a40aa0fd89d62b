package render_timetable

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	getTimetable "github.com/m04kA/SMC-TimetableService/internal/usecase/get_timetable"
	"github.com/m04kA/SMC-TimetableService/pkg/logger"
	"github.com/m04kA/SMC-TimetableService/pkg/ptr"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

type useCaseStub struct {
	resp *getTimetable.Response
	err  error
}

func (s *useCaseStub) Execute(context.Context, *getTimetable.Request) (*getTimetable.Response, error) {
	return s.resp, s.err
}

func sampleResponse(t *testing.T) *getTimetable.Response {
	t.Helper()
	grid, err := getTimetable.BuildGrid(domain.DefaultGridConfig())
	require.NoError(t, err)

	placement := getTimetable.Placement{
		StartTime: types.MustTimeString("07:30"),
		EndTime:   types.MustTimeString("08:15"),
		TopPx:     130,
		LeftPx:    280,
		WidthPx:   98,
		HeightPx:  45,
	}

	return &getTimetable.Response{
		Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Grid: grid,
		Boxes: []getTimetable.Box{
			{
				ReservationID: 1,
				Bay:           3,
				Placement:     placement,
				Status:        domain.BoxStatusNegativeBalance,
				MemberID:      ptr.Ptr(int64(20)),
				HoverText:     "Kim\n07:30 - 08:15\nBalance: -2,000원",
				DetailPath:    "/api/v1/members/20/balance",
			},
			{
				ReservationID: 2,
				Bay:           4,
				Placement:     placement,
				Status:        domain.BoxStatusOther,
				HoverText:     "<script>alert(1)</script>\n07:30 - 08:15",
			},
		},
		Skipped: []getTimetable.SkippedReservation{
			{ReservationID: 9, Bay: 12, Reason: getTimetable.SkipReasonBayOutOfRange},
		},
	}
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(&useCaseStub{resp: sampleResponse(t)}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/timetable?date=2025-10-15", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<h1>2025-10-15</h1>")
	assert.Contains(t, body, `class="box negative-balance"`)
	assert.Contains(t, body, `href="/api/v1/members/20/balance"`)
	assert.Contains(t, body, "top: 130px; left: 280px; width: 98px; height: 45px;")
	assert.Contains(t, body, `<div class="box status-other"`)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "#9 (bay 12): bay_out_of_range")
	assert.Contains(t, body, ">00:00</div>")
}

func TestHandler_Handle_Errors(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		h := NewHandler(&useCaseStub{}, logger.NewNop())
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/timetable?date=tomorrow", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("use case failure", func(t *testing.T) {
		h := NewHandler(&useCaseStub{err: getTimetable.ErrInternal}, logger.NewNop())
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/timetable", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		h := NewHandler(&useCaseStub{err: errors.New("boom")}, logger.NewNop())
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/timetable", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestBoxLabel(t *testing.T) {
	assert.Equal(t, "Kim\n07:30 - 08:15", boxLabel("Kim\n07:30 - 08:15\nBalance: 1원"))
	assert.Equal(t, "Guest\n10:00 - 11:00", boxLabel("Guest\n10:00 - 11:00"))
}

func TestPx(t *testing.T) {
	assert.Equal(t, "130px", px(130))
	assert.Equal(t, "42.5px", px(42.5))
}
