package members

import (
	"context"
	"errors"
	"fmt"

	balanceRepo "github.com/m04kA/SMC-TimetableService/internal/infra/storage/balance"
	"github.com/m04kA/SMC-TimetableService/internal/service/members/models"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

// Service сервис карточки участника
type Service struct {
	balanceRepo    BalanceRepository
	currencySuffix string
	logger         Logger
}

// NewService создает новый экземпляр сервиса участников
func NewService(balanceRepo BalanceRepository, currencySuffix string, logger Logger) *Service {
	return &Service{
		balanceRepo:    balanceRepo,
		currencySuffix: currencySuffix,
		logger:         logger,
	}
}

// GetBalance возвращает последний известный баланс участника
func (s *Service) GetBalance(ctx context.Context, memberID int64) (*models.BalanceResponse, error) {
	if memberID <= 0 {
		s.logger.Warn("GetBalance: invalid member id=%d", memberID)
		return nil, fmt.Errorf("%w: member id must be positive", ErrInvalidInput)
	}

	balance, err := s.balanceRepo.GetLatestByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, balanceRepo.ErrBalanceNotFound) {
			s.logger.Warn("GetBalance: no balance history for member=%d", memberID)
			return nil, ErrBalanceNotFound
		}
		s.logger.Error("GetBalance: failed to get balance for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: failed to get balance: %v", ErrInternal, err)
	}

	return &models.BalanceResponse{
		MemberID:    memberID,
		Balance:     balance,
		BalanceText: types.FormatMoney(balance, s.currencySuffix),
		IsNegative:  balance < 0,
	}, nil
}
