package repository

import "github.com/shopspring/decimal"

// roundNull rounds a nullable aggregate to cents.
func roundNull(d *decimal.NullDecimal) {
	if d.Valid {
		d.Decimal = d.Decimal.Round(2)
	}
}
