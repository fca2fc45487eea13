// Package product holds the catalog record and its presentation helpers.
package product

import (
	"fmt"
	"math"
	"math/big"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Product is one catalog record. JSON keys follow the catalog wire format.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Price       float64 `json:"valor"`
	Available   bool    `json:"disponivel"`
	// ImageURL is the server path of the uploaded image, if any.
	ImageURL string `json:"imagem,omitempty"`
}

// AvailableLabel renders Available the way the form spells it.
func (p Product) AvailableLabel() string {
	if p.Available {
		return "sim"
	}
	return "nao"
}

// FormValues returns p as product form values.
func (p Product) FormValues() map[string]string {
	return map[string]string{
		"nome":       p.Name,
		"descricao":  p.Description,
		"valor":      fmt.Sprintf("%.2f", p.Price),
		"disponivel": p.AvailableLabel(),
	}
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats v as Brazilian reais: 19.9 is "R$ 19,90" and 1234.5 is
// "R$ 1.234,50". Exact halves of a cent round away from zero, so 0.125 is
// "R$ 0,13".
func FormatBRL(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return sign + "R$ " + brl.Sprint(number.Decimal(roundCents(v), number.Scale(2)))
}

var (
	hundred = big.NewFloat(100)
	half    = big.NewFloat(0.5)
)

// roundCents rounds a non-negative v to whole cents, ties up. It works on the
// exact binary value of v, so 1.005 (stored as 1.00499...) stays 1.00.
func roundCents(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	cents := new(big.Float).SetPrec(256).SetFloat64(v)
	cents.Mul(cents, hundred).Add(cents, half)
	n, _ := cents.Int64()
	return float64(n) / 100
}
