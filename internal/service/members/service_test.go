package members

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	balanceRepo "github.com/m04kA/SMC-TimetableService/internal/infra/storage/balance"
	"github.com/m04kA/SMC-TimetableService/pkg/logger"
)

type mockBalanceRepo struct {
	mock.Mock
}

func (m *mockBalanceRepo) GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_GetBalance(t *testing.T) {
	repo := &mockBalanceRepo{}
	repo.On("GetLatestByMemberID", mock.Anything, int64(20)).Return(int64(-2500), nil)

	resp, err := NewService(repo, "원", logger.NewNop()).GetBalance(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, int64(20), resp.MemberID)
	assert.Equal(t, int64(-2500), resp.Balance)
	assert.Equal(t, "-2,500원", resp.BalanceText)
	assert.True(t, resp.IsNegative)
	repo.AssertExpectations(t)
}

func TestService_GetBalance_Errors(t *testing.T) {
	tests := []struct {
		name     string
		memberID int64
		repoErr  error
		wantErr  error
	}{
		{name: "zero id", memberID: 0, wantErr: ErrInvalidInput},
		{name: "negative id", memberID: -3, wantErr: ErrInvalidInput},
		{name: "no history", memberID: 7, repoErr: balanceRepo.ErrBalanceNotFound, wantErr: ErrBalanceNotFound},
		{name: "storage failure", memberID: 7, repoErr: errors.New("connection reset"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBalanceRepo{}
			if tt.repoErr != nil {
				repo.On("GetLatestByMemberID", mock.Anything, tt.memberID).Return(int64(0), tt.repoErr)
			}

			resp, err := NewService(repo, "원", logger.NewNop()).GetBalance(context.Background(), tt.memberID)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
