package commission

import (
	"github.com/shopspring/decimal"
)

// Constantes métier du calcul de commission.
const (
	TauxTVA        = 1.18 // TTC -> HT
	TauxCommission = 0.04 // commission sur le HT facturable

	PrixTerminalA = 1000 // TTC d'un terminal palier A
	PrixTerminalB = 5000 // TTC d'un terminal palier B

	CommissionTerminalA = 1977 // commission fixe par terminal palier A
	CommissionTerminalB = 2260 // commission fixe par terminal palier B
)

// Round2 arrondit au centime, demi-centime arrondi loin de zéro.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// MontantHT dérive le hors-taxe d'un montant TTC (TTC / 1.18, arrondi au centime).
func MontantHT(ttc float64) float64 {
	ht, _ := decimal.NewFromFloat(ttc).
		Div(decimal.NewFromFloat(TauxTVA)).
		Round(2).
		Float64()
	return ht
}

// CommissionSurHT applique le taux de 4% à un total HT, arrondi au centime.
func CommissionSurHT(totalHT float64) float64 {
	c, _ := decimal.NewFromFloat(totalHT).
		Mul(decimal.NewFromFloat(TauxCommission)).
		Round(2).
		Float64()
	return c
}
