package domain

import "strings"

// Category is the business label of a reservation
type Category string

const (
	CategoryPaymentCompleted Category = "payment completed"
	CategoryJunior           Category = "junior"
	CategoryWellbeingClub    Category = "wellbeing-club"
	CategoryRefresh          Category = "refresh"
	CategoryAicoGen          Category = "aico-gen"
	CategoryKimCaddy         Category = "kim-caddy"
	CategoryPendingReview    Category = "pending-review"
)

// ParseCategory normalizes a stored label (case and surrounding whitespace)
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// BoxStatus is the visual status of a reservation box on the timetable
type BoxStatus string

const (
	BoxStatusCompleted       BoxStatus = "completed"
	BoxStatusNegativeBalance BoxStatus = "negative-balance"
	BoxStatusMissingData     BoxStatus = "missing-data"
	BoxStatusJunior          BoxStatus = "status-junior"
	BoxStatusWellbeing       BoxStatus = "status-wellbeing"
	BoxStatusPending         BoxStatus = "status-pending"
	BoxStatusOther           BoxStatus = "status-other"
)

// categoryStatuses maps non-payment categories to their box status.
// Adding a category is a change to this table only.
var categoryStatuses = map[Category]BoxStatus{
	CategoryJunior:        BoxStatusJunior,
	CategoryWellbeingClub: BoxStatusWellbeing,
	CategoryRefresh:       BoxStatusWellbeing,
	CategoryAicoGen:       BoxStatusWellbeing,
	CategoryKimCaddy:      BoxStatusWellbeing,
	CategoryPendingReview: BoxStatusPending,
}

// AllBoxStatuses lists every status ClassifyReservation can return
var AllBoxStatuses = []BoxStatus{
	BoxStatusCompleted,
	BoxStatusNegativeBalance,
	BoxStatusMissingData,
	BoxStatusJunior,
	BoxStatusWellbeing,
	BoxStatusPending,
	BoxStatusOther,
}

// ClassifyReservation returns the box status for a category and an optional balance snapshot.
//
// Payment-completed reservations are classified by the balance: no snapshot is a data
// anomaly (missing-data), a negative snapshot is negative-balance, anything else is completed.
// Other categories go through categoryStatuses; unknown labels become status-other.
func ClassifyReservation(category Category, balance *int64) BoxStatus {
	if category == CategoryPaymentCompleted {
		switch {
		case balance == nil:
			return BoxStatusMissingData
		case *balance < 0:
			return BoxStatusNegativeBalance
		default:
			return BoxStatusCompleted
		}
	}

	if status, ok := categoryStatuses[category]; ok {
		return status
	}
	return BoxStatusOther
}

// IsAttention returns true for statuses the operator has to act on
func (s BoxStatus) IsAttention() bool {
	return s == BoxStatusMissingData || s == BoxStatusNegativeBalance
}
