package models

// BalanceResponse карточка участника, открываемая по клику на бронь
type BalanceResponse struct {
	MemberID    int64  `json:"memberId"`
	Balance     int64  `json:"balance"`
	BalanceText string `json:"balanceText"` // "12,345원"
	IsNegative  bool   `json:"isNegative"`
}
