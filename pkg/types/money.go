package types

import "github.com/dustin/go-humanize"

// FormatMoney форматирует сумму с разделителями тысяч и суффиксом валюты: 12,345원
func FormatMoney(amount int64, currencySuffix string) string {
	return humanize.Comma(amount) + currencySuffix
}
