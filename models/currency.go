package models

import "fmt"

// Currency 支持的货币
type Currency struct {
	Value  string `json:"value"`  // ISO 代码，如 USD
	Label  string `json:"label"`  // 展示名称
	Symbol string `json:"symbol"` // 货币符号
}

// Currencies 支持的货币固定列表
var Currencies = []Currency{
	{Value: "INR", Label: "₹ Rupee", Symbol: "₹"},
	{Value: "GBP", Label: "£ Pound", Symbol: "£"},
	{Value: "EUR", Label: "€ Euro", Symbol: "€"},
	{Value: "USD", Label: "$ Dollar", Symbol: "$"},
}

// IsSupportedCurrency 校验货币代码是否受支持
func IsSupportedCurrency(value string) bool {
	for _, c := range Currencies {
		if c.Value == value {
			return true
		}
	}
	return false
}

// FormatAmount 按货币符号格式化金额，保留两位小数
func FormatAmount(currency string, amount float64) string {
	symbol := currency + " "
	for _, c := range Currencies {
		if c.Value == currency {
			symbol = c.Symbol
			break
		}
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
