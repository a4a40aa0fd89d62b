package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/psqlbuilder"
)

const tableReservations = "reservations"

// Repository репозиторий для чтения броней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает все неотменённые брони на указанную дату
// Порядок: время начала, номер отсека, ID - в этом порядке брони рисуются на сетке
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	query, args, err := buildGetByDateQuery(date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// buildGetByDateQuery строит запрос броней на дату
// Дата передаётся строкой YYYY-MM-DD, чтобы часовой пояс time.Time не сдвигал день
func buildGetByDateQuery(date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"reservation_date",
		"bay",
		"status",
		"start_time::text",
		"end_time::text",
		"member_id",
		"member_name",
		"category",
	).
		From(tableReservations).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": string(domain.ReservationStatusCancelled)}).
		OrderBy("start_time ASC", "bay ASC", "id ASC").
		ToSql()
}

// scanReservations сканирует результаты запроса в слайс броней
// Время начала и конца читается как текст (::text) и остаётся строкой:
// разбор и валидация делаются при раскладке
func scanReservations(rows rowsScanner) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var (
			res      domain.Reservation
			status   string
			category string
			memberID sql.NullInt64
		)

		err := rows.Scan(
			&res.ID,
			&res.Date,
			&res.Bay,
			&status,
			&res.StartTime,
			&res.EndTime,
			&memberID,
			&res.MemberName,
			&category,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.Status = domain.ReservationStatus(status)
		res.Category = domain.ParseCategory(category)
		if memberID.Valid {
			id := memberID.Int64
			res.MemberID = &id
		}

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
