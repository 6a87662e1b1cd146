package services

import "github.com/shopspring/decimal"

// MinorUnits converts a major-unit amount to integer minor units (cents),
// rounding half away from zero.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
