package get_timetable

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/ptr"
)

// Options параметры раскладки, фиксированные на время жизни сервиса
type Options struct {
	Grid           domain.GridConfig
	Location       *time.Location // часовой пояс площадки для "сегодня"
	CurrencySuffix string
}

// UseCase use case построения расписания отсеков на дату
type UseCase struct {
	reservationRepo ReservationRepository
	balanceRepo     BalanceRepository
	opts            Options
	recorder        MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil, если метрики выключены
func NewUseCase(
	reservationRepo ReservationRepository,
	balanceRepo BalanceRepository,
	opts Options,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		balanceRepo:     balanceRepo,
		opts:            opts,
		recorder:        recorder,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case построения расписания
//
// Ошибка конфигурации сетки прерывает раскладку до чтения данных.
// Ошибка хранилища прерывает весь запрос - частичная сетка не отдаётся.
// Некорректные брони пропускаются по одной и попадают в Skipped.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := uc.resolveDate(req.Date)
	uc.logger.Info("GetTimetable: date=%s", date.Format(domain.DateFormat))

	// 1. Строим сетку
	grid, err := BuildGrid(uc.opts.Grid)
	if err != nil {
		uc.logger.Error("GetTimetable: invalid grid config: %v", err)
		return nil, err
	}

	// 2. Получаем брони на дату
	reservations, err := uc.reservationRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetTimetable: failed to get reservations for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 3. Получаем снимки баланса участников
	memberIDs := collectMemberIDs(reservations)
	balances, err := uc.balanceRepo.GetLatestByMemberIDs(ctx, memberIDs)
	if err != nil {
		uc.logger.Error("GetTimetable: failed to get balances for %d members: %v", len(memberIDs), err)
		return nil, fmt.Errorf("%w: failed to get balances: %v", ErrInternal, err)
	}

	// 4. Классифицируем и размещаем каждую бронь независимо
	boxes := make([]Box, 0, len(reservations))
	skipped := make([]SkippedReservation, 0)

	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		attachBalance(r, balances)

		box, err := uc.buildBox(grid, r)
		if err != nil {
			reason := skipReason(err)
			uc.logger.Warn("GetTimetable: skipping reservation id=%d bay=%d: %v", r.ID, r.Bay, err)
			uc.recorder.ObserveSkipped(reason)
			skipped = append(skipped, SkippedReservation{
				ReservationID: r.ID,
				Bay:           r.Bay,
				Reason:        reason,
				Message:       err.Error(),
			})
			continue
		}

		uc.recorder.ObserveBox(string(box.Status))
		boxes = append(boxes, *box)
	}

	uc.logger.Info("GetTimetable: date=%s, placed=%d, skipped=%d",
		date.Format(domain.DateFormat), len(boxes), len(skipped))

	return &Response{
		Date:    date,
		Grid:    grid,
		Boxes:   boxes,
		Skipped: skipped,
	}, nil
}

// buildBox размещает бронь на сетке и классифицирует её
func (uc *UseCase) buildBox(grid *Grid, r *domain.Reservation) (*Box, error) {
	placement, err := PlaceReservation(grid, r)
	if err != nil {
		return nil, err
	}

	status := domain.ClassifyReservation(r.Category, r.BalanceAfter)

	return &Box{
		ReservationID: r.ID,
		Bay:           r.Bay,
		Placement:     *placement,
		Status:        status,
		Category:      r.Category,
		MemberID:      r.MemberID,
		MemberName:    r.MemberName,
		Balance:       r.BalanceAfter,
		HoverText:     formatHoverText(r, placement, uc.opts.CurrencySuffix),
		DetailPath:    detailPath(r.MemberID),
	}, nil
}

// resolveDate возвращает запрошенную дату или сегодняшнюю в часовом поясе площадки
func (uc *UseCase) resolveDate(date time.Time) time.Time {
	if date.IsZero() {
		date = uc.timeProvider.Now().In(uc.opts.Location)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// collectMemberIDs возвращает уникальные ID участников неотменённых броней в порядке возрастания
func collectMemberIDs(reservations []*domain.Reservation) []int64 {
	seen := make(map[int64]struct{}, len(reservations))
	ids := make([]int64, 0, len(reservations))

	for _, r := range reservations {
		if r.MemberID == nil || r.IsCancelled() {
			continue
		}
		if _, ok := seen[*r.MemberID]; ok {
			continue
		}
		seen[*r.MemberID] = struct{}{}
		ids = append(ids, *r.MemberID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// attachBalance проставляет снимок баланса участника, если он известен
func attachBalance(r *domain.Reservation, balances map[int64]int64) {
	if r.MemberID == nil {
		return
	}
	if balance, ok := balances[*r.MemberID]; ok {
		r.BalanceAfter = ptr.Ptr(balance)
	}
}
