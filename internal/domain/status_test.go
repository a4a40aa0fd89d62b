package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/ptr"
)

func TestClassifyReservation(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		balance  *int64
		want     domain.BoxStatus
	}{
		{name: "payment completed without balance", category: domain.CategoryPaymentCompleted, balance: nil, want: domain.BoxStatusMissingData},
		{name: "payment completed negative balance", category: domain.CategoryPaymentCompleted, balance: ptr.Ptr(int64(-500)), want: domain.BoxStatusNegativeBalance},
		{name: "payment completed positive balance", category: domain.CategoryPaymentCompleted, balance: ptr.Ptr(int64(1200)), want: domain.BoxStatusCompleted},
		{name: "payment completed zero balance", category: domain.CategoryPaymentCompleted, balance: ptr.Ptr(int64(0)), want: domain.BoxStatusCompleted},
		{name: "junior without balance", category: domain.CategoryJunior, balance: nil, want: domain.BoxStatusJunior},
		{name: "junior ignores negative balance", category: domain.CategoryJunior, balance: ptr.Ptr(int64(-1)), want: domain.BoxStatusJunior},
		{name: "wellbeing club", category: domain.CategoryWellbeingClub, want: domain.BoxStatusWellbeing},
		{name: "refresh", category: domain.CategoryRefresh, want: domain.BoxStatusWellbeing},
		{name: "aico-gen", category: domain.CategoryAicoGen, want: domain.BoxStatusWellbeing},
		{name: "kim-caddy", category: domain.CategoryKimCaddy, want: domain.BoxStatusWellbeing},
		{name: "pending review", category: domain.CategoryPendingReview, want: domain.BoxStatusPending},
		{name: "unknown label", category: domain.Category("unknown-label"), want: domain.BoxStatusOther},
		{name: "empty label", category: domain.Category(""), want: domain.BoxStatusOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyReservation(tt.category, tt.balance))
		})
	}
}

func TestClassifyReservation_TotalAndDeterministic(t *testing.T) {
	categories := []domain.Category{
		domain.CategoryPaymentCompleted, domain.CategoryJunior, domain.CategoryWellbeingClub,
		domain.CategoryRefresh, domain.CategoryAicoGen, domain.CategoryKimCaddy,
		domain.CategoryPendingReview, "walk-in", "",
	}
	balances := []*int64{nil, ptr.Ptr(int64(-1)), ptr.Ptr(int64(0)), ptr.Ptr(int64(1))}

	for _, c := range categories {
		for _, b := range balances {
			first := domain.ClassifyReservation(c, b)
			assert.Contains(t, domain.AllBoxStatuses, first)
			assert.Equal(t, first, domain.ClassifyReservation(c, b))
		}
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, domain.CategoryPaymentCompleted, domain.ParseCategory("  Payment Completed "))
	assert.Equal(t, domain.CategoryKimCaddy, domain.ParseCategory("KIM-CADDY"))
	assert.Equal(t, domain.Category("something"), domain.ParseCategory("something"))
}

func TestBoxStatus_IsAttention(t *testing.T) {
	assert.True(t, domain.BoxStatusMissingData.IsAttention())
	assert.True(t, domain.BoxStatusNegativeBalance.IsAttention())
	assert.False(t, domain.BoxStatusCompleted.IsAttention())
	assert.False(t, domain.BoxStatusOther.IsAttention())
}
