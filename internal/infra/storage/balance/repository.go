package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TimetableService/pkg/psqlbuilder"
)

const tableCreditLedger = "credit_ledger"

// Repository репозиторий снимков баланса участников
// Снимок - значение balance_after последней записи журнала участника
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория балансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetLatestByMemberIDs получает последний известный баланс для каждого участника
// Участники без записей в журнале в результат не попадают
func (r *Repository) GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error) {
	if len(memberIDs) == 0 {
		return make(map[int64]int64), nil
	}

	query, args, err := buildLatestQuery(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByMemberIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByMemberIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBalances(rows, len(memberIDs))
}

// GetLatestByMemberID получает последний известный баланс одного участника
func (r *Repository) GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error) {
	query, args, err := buildLatestQuery([]int64{memberID})
	if err != nil {
		return 0, fmt.Errorf("%w: GetLatestByMemberID - build select query: %v", ErrBuildQuery, err)
	}

	return scanLatestBalance(r.db.QueryRowContext(ctx, query, args...))
}

// buildLatestQuery строит запрос последней записи журнала для каждого участника
// DISTINCT ON оставляет первую строку в порядке ORDER BY внутри каждого member_id
func buildLatestQuery(memberIDs []int64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"DISTINCT ON (member_id) member_id",
		"balance_after",
	).
		From(tableCreditLedger).
		Where(squirrel.Eq{"member_id": memberIDs}).
		OrderBy("member_id", "created_at DESC", "id DESC").
		ToSql()
}

// scanBalances сканирует пары (member_id, balance_after) в map по ID участника
func scanBalances(rows rowsScanner, sizeHint int) (map[int64]int64, error) {
	balances := make(map[int64]int64, sizeHint)

	for rows.Next() {
		var memberID, balanceAfter int64
		if err := rows.Scan(&memberID, &balanceAfter); err != nil {
			return nil, fmt.Errorf("%w: scanBalances - scan row: %v", ErrScanRow, err)
		}
		balances[memberID] = balanceAfter
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBalances - rows error: %v", ErrScanRow, err)
	}

	return balances, nil
}

// scanLatestBalance читает снимок баланса одного участника
// Отсутствие строк означает, что записей в журнале нет: ErrBalanceNotFound
func scanLatestBalance(row rowScanner) (int64, error) {
	var memberID, balanceAfter int64
	err := row.Scan(&memberID, &balanceAfter)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBalanceNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: scanLatestBalance - scan balance: %v", ErrScanRow, err)
	}

	return balanceAfter, nil
}
