package get_member_balance

import (
	"context"

	"github.com/m04kA/SMC-TimetableService/internal/service/members/models"
)

type MemberService interface {
	GetBalance(ctx context.Context, memberID int64) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
