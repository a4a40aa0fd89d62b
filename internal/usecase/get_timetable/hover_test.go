package get_timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/ptr"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

func TestFormatHoverText(t *testing.T) {
	p := &Placement{StartTime: types.MustTimeString("07:30"), EndTime: types.MustTimeString("08:15")}

	tests := []struct {
		name string
		res  domain.Reservation
		want string
	}{
		{
			name: "payment completed with balance",
			res:  domain.Reservation{MemberName: "Kim", Category: domain.CategoryPaymentCompleted, BalanceAfter: ptr.Ptr(int64(12000))},
			want: "Kim\n07:30 - 08:15\nBalance: 12,000원",
		},
		{
			name: "payment completed without balance",
			res:  domain.Reservation{MemberName: "Kim", Category: domain.CategoryPaymentCompleted},
			want: "Kim\n07:30 - 08:15",
		},
		{
			name: "junior hides balance",
			res:  domain.Reservation{MemberName: "Lee", Category: domain.CategoryJunior, BalanceAfter: ptr.Ptr(int64(500))},
			want: "Lee\n07:30 - 08:15",
		},
		{
			name: "walk-in without name",
			res:  domain.Reservation{MemberName: "  ", Category: "other"},
			want: "Guest\n07:30 - 08:15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.res
			assert.Equal(t, tt.want, formatHoverText(&res, p, "원"))
		})
	}
}

func TestDetailPath(t *testing.T) {
	assert.Equal(t, "/api/v1/members/42/balance", detailPath(ptr.Ptr(int64(42))))
	assert.Equal(t, "", detailPath(nil))
}
