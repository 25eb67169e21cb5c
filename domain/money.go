package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in the smallest unit of the catalog currency.
type Money int64

// Currency describes how a Money amount is displayed.
type Currency struct {
	Code     string `yaml:"code" json:"code"`
	Exponent int    `yaml:"exponent" json:"exponent"`
}

// KES is the brokerage's quoting currency. Prices are quoted in whole shillings.
var KES = Currency{Code: "KES", Exponent: 0}

var printer = message.NewPrinter(language.English)

// Format renders m with thousands separators, e.g. "KES 4,553".
func (c Currency) Format(m Money) string {
	if c.Exponent <= 0 {
		return printer.Sprintf("%s %d", c.Code, int64(m))
	}

	div := int64(1)
	for i := 0; i < c.Exponent; i++ {
		div *= 10
	}
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return printer.Sprintf("%s %s%d.%s", c.Code, sign, v/div, fmt.Sprintf("%0*d", c.Exponent, v%div))
}
