package get_timetable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/logger"
	"github.com/m04kA/SMC-TimetableService/pkg/ptr"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, date)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBalanceRepo struct {
	mock.Mock
}

func (m *mockBalanceRepo) GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, memberIDs)
	if v := args.Get(0); v != nil {
		return v.(map[int64]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type recorderStub struct {
	boxes   map[string]int
	skipped map[string]int
}

func newRecorderStub() *recorderStub {
	return &recorderStub{boxes: map[string]int{}, skipped: map[string]int{}}
}

func (r *recorderStub) ObserveBox(status string)     { r.boxes[status]++ }
func (r *recorderStub) ObserveSkipped(reason string) { r.skipped[reason]++ }

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestUseCase(resRepo *mockReservationRepo, balRepo *mockBalanceRepo, rec MetricsRecorder) *UseCase {
	return NewUseCase(resRepo, balRepo, Options{
		Grid:           testGridConfig(),
		Location:       time.UTC,
		CurrencySuffix: "원",
	}, rec, logger.NewNop())
}

func TestUseCase_Execute(t *testing.T) {
	resRepo := &mockReservationRepo{}
	balRepo := &mockBalanceRepo{}
	rec := newRecorderStub()

	reservations := []*domain.Reservation{
		{ID: 1, Bay: 3, StartTime: "07:30:00", EndTime: "08:15:00", MemberID: ptr.Ptr(int64(20)), MemberName: "Kim", Category: domain.CategoryPaymentCompleted},
		{ID: 2, Bay: 4, StartTime: "08:00", EndTime: "09:00", MemberID: ptr.Ptr(int64(10)), MemberName: "Lee", Category: domain.CategoryPaymentCompleted},
		{ID: 3, Bay: 5, StartTime: "09:00", EndTime: "10:00", MemberID: ptr.Ptr(int64(30)), MemberName: "Park", Category: domain.CategoryPaymentCompleted},
		{ID: 4, Bay: 1, StartTime: "10:00", EndTime: "11:00", MemberName: "", Category: domain.CategoryJunior},
		{ID: 5, Bay: 12, StartTime: "10:00", EndTime: "11:00", MemberID: ptr.Ptr(int64(20)), Category: domain.CategoryRefresh},
		{ID: 6, Bay: 2, StartTime: "bad", EndTime: "11:00", Category: "vip"},
	}

	resRepo.On("GetByDate", mock.Anything, testDate).Return(reservations, nil)
	balRepo.On("GetLatestByMemberIDs", mock.Anything, []int64{10, 20, 30}).
		Return(map[int64]int64{20: 12000, 10: -500}, nil)

	uc := newTestUseCase(resRepo, balRepo, rec)
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, testDate, resp.Date)
	require.NotNil(t, resp.Grid)
	require.Len(t, resp.Boxes, 4)

	first := resp.Boxes[0]
	assert.Equal(t, int64(1), first.ReservationID)
	assert.Equal(t, domain.BoxStatusCompleted, first.Status)
	assert.Equal(t, 280.0, first.LeftPx)
	assert.Equal(t, 130.0, first.TopPx)
	assert.Equal(t, 45.0, first.HeightPx)
	assert.Equal(t, "Kim\n07:30 - 08:15\nBalance: 12,000원", first.HoverText)
	assert.Equal(t, "/api/v1/members/20/balance", first.DetailPath)
	require.NotNil(t, first.Balance)
	assert.Equal(t, int64(12000), *first.Balance)

	assert.Equal(t, domain.BoxStatusNegativeBalance, resp.Boxes[1].Status)
	assert.Equal(t, domain.BoxStatusMissingData, resp.Boxes[2].Status)
	assert.Nil(t, resp.Boxes[2].Balance)

	walkIn := resp.Boxes[3]
	assert.Equal(t, domain.BoxStatusJunior, walkIn.Status)
	assert.Nil(t, walkIn.MemberID)
	assert.Empty(t, walkIn.DetailPath)
	assert.Equal(t, "Guest\n10:00 - 11:00", walkIn.HoverText)

	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, int64(5), resp.Skipped[0].ReservationID)
	assert.Equal(t, SkipReasonBayOutOfRange, resp.Skipped[0].Reason)
	assert.Equal(t, int64(6), resp.Skipped[1].ReservationID)
	assert.Equal(t, SkipReasonInvalidTime, resp.Skipped[1].Reason)

	assert.Equal(t, 1, rec.boxes[string(domain.BoxStatusCompleted)])
	assert.Equal(t, 1, rec.boxes[string(domain.BoxStatusMissingData)])
	assert.Equal(t, 1, rec.skipped[SkipReasonBayOutOfRange])
	assert.Equal(t, 1, rec.skipped[SkipReasonInvalidTime])

	resRepo.AssertExpectations(t)
	balRepo.AssertExpectations(t)
}

func TestUseCase_Execute_DefaultsToToday(t *testing.T) {
	resRepo := &mockReservationRepo{}
	balRepo := &mockBalanceRepo{}

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	uc := NewUseCase(resRepo, balRepo, Options{Grid: testGridConfig(), Location: seoul}, nil, logger.NewNop())
	// 20:00 UTC 14 октября - уже 15 октября в Сеуле
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 14, 20, 0, 0, 0, time.UTC)}

	expected := time.Date(2025, 10, 15, 0, 0, 0, 0, seoul)
	resRepo.On("GetByDate", mock.Anything, expected).Return([]*domain.Reservation{}, nil)
	balRepo.On("GetLatestByMemberIDs", mock.Anything, []int64{}).Return(map[int64]int64{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, expected, resp.Date)
	assert.Empty(t, resp.Boxes)
	assert.Empty(t, resp.Skipped)
	resRepo.AssertExpectations(t)
}

func TestUseCase_Execute_SkipsCancelled(t *testing.T) {
	resRepo := &mockReservationRepo{}
	balRepo := &mockBalanceRepo{}

	resRepo.On("GetByDate", mock.Anything, testDate).Return([]*domain.Reservation{
		{ID: 1, Bay: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationStatusCancelled, MemberID: ptr.Ptr(int64(9))},
		{ID: 2, Bay: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationStatusActive, Category: domain.CategoryPendingReview, MemberID: ptr.Ptr(int64(3))},
	}, nil)
	// Баланс участника, у которого только отменённые брони, не запрашивается
	balRepo.On("GetLatestByMemberIDs", mock.Anything, []int64{3}).Return(map[int64]int64{3: 1500}, nil)

	resp, err := newTestUseCase(resRepo, balRepo, nil).Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Boxes, 1)
	assert.Equal(t, int64(2), resp.Boxes[0].ReservationID)
	assert.Equal(t, domain.BoxStatusPending, resp.Boxes[0].Status)
	assert.Empty(t, resp.Skipped)
	balRepo.AssertExpectations(t)
}

func TestUseCase_Execute_RepositoryErrors(t *testing.T) {
	t.Run("reservations", func(t *testing.T) {
		resRepo := &mockReservationRepo{}
		balRepo := &mockBalanceRepo{}
		resRepo.On("GetByDate", mock.Anything, testDate).Return(nil, errors.New("connection refused"))

		resp, err := newTestUseCase(resRepo, balRepo, nil).Execute(context.Background(), &Request{Date: testDate})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInternal)
		balRepo.AssertNotCalled(t, "GetLatestByMemberIDs", mock.Anything, mock.Anything)
	})

	t.Run("balances", func(t *testing.T) {
		resRepo := &mockReservationRepo{}
		balRepo := &mockBalanceRepo{}
		resRepo.On("GetByDate", mock.Anything, testDate).Return([]*domain.Reservation{
			{ID: 1, Bay: 1, StartTime: "10:00", EndTime: "11:00", MemberID: ptr.Ptr(int64(7))},
		}, nil)
		balRepo.On("GetLatestByMemberIDs", mock.Anything, []int64{7}).Return(nil, errors.New("timeout"))

		resp, err := newTestUseCase(resRepo, balRepo, nil).Execute(context.Background(), &Request{Date: testDate})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_InvalidGridConfig(t *testing.T) {
	resRepo := &mockReservationRepo{}
	balRepo := &mockBalanceRepo{}

	cfg := testGridConfig()
	cfg.BayCount = 0
	uc := NewUseCase(resRepo, balRepo, Options{Grid: cfg}, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidGridConfig)
	resRepo.AssertNotCalled(t, "GetByDate", mock.Anything, mock.Anything)
}

func TestCollectMemberIDs(t *testing.T) {
	ids := collectMemberIDs([]*domain.Reservation{
		{MemberID: ptr.Ptr(int64(5))},
		{},
		{MemberID: ptr.Ptr(int64(2))},
		{MemberID: ptr.Ptr(int64(5))},
		{MemberID: ptr.Ptr(int64(9)), Status: domain.ReservationStatusCancelled},
	})
	assert.Equal(t, []int64{2, 5}, ids)
}
