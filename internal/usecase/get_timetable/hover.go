package get_timetable

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

// MemberDetailPathFormat путь карточки участника, открываемой по клику на бронь
const MemberDetailPathFormat = "/api/v1/members/%d/balance"

const guestName = "Guest"

// formatHoverText собирает текст подсказки: имя, интервал и (для оплаченных броней
// с известным балансом) баланс участника
func formatHoverText(r *domain.Reservation, p *Placement, currencySuffix string) string {
	name := strings.TrimSpace(r.MemberName)
	if name == "" {
		name = guestName
	}

	lines := []string{
		name,
		fmt.Sprintf("%s - %s", p.StartTime, p.EndTime),
	}

	if r.Category == domain.CategoryPaymentCompleted && r.BalanceAfter != nil {
		lines = append(lines, "Balance: "+types.FormatMoney(*r.BalanceAfter, currencySuffix))
	}

	return strings.Join(lines, "\n")
}

// detailPath возвращает путь карточки участника или пустую строку для гостя
func detailPath(memberID *int64) string {
	if memberID == nil {
		return ""
	}
	return fmt.Sprintf(MemberDetailPathFormat, *memberID)
}
