// Package commission implémente le calcul de commission mensuelle d'un
// partenaire. Le calcul est une fonction pure sur une liste d'activités : le
// tableau de bord, la génération PDF, le batch mensuel et la consultation d'un
// récap passent tous par Calculer pour garantir des chiffres identiques.
package commission

import (
	"math"
	"strings"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/shopspring/decimal"
)

// Resume est le résultat structuré du calcul de commission sur une période.
type Resume struct {
	TotalHT               float64 `json:"totalHT"`
	CommissionPourcentage float64 `json:"commissionPourcentage"`
	NbEchangePayant       int     `json:"nbEchangePayant"`
	NbTerminal1000        int     `json:"nbTerminal1000"`
	NbTerminal5000        int     `json:"nbTerminal5000"`
	CommissionTerminal    float64 `json:"commissionTerminal"`
	TotalCommission       float64 `json:"totalCommission"`
}

// TotalCreatTerminal retourne le nombre total de terminaux pris en compte.
func (r Resume) TotalCreatTerminal() int {
	return r.NbTerminal1000 + r.NbTerminal5000
}

// EstPrest indique si la ligne est une prestation, exclue de tout calcul.
func EstPrest(cmouvmt string) bool {
	return strings.EqualFold(cmouvmt, activite.MouvementPrest)
}

// Filtrer retire les lignes PREST. Les autres règles d'exclusion sont
// appliquées dans Calculer.
func Filtrer(activites []activite.Activite) []activite.Activite {
	out := make([]activite.Activite, 0, len(activites))
	for _, a := range activites {
		if EstPrest(a.Cmouvmt) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Calculer produit le Resume de commission pour la liste d'activités donnée.
//
// Le sous-ensemble facturable au pourcentage exclut les PAYECH (comptés à
// part) et les CREAT Terminal (barème à prix fixe). Les terminaux sont palier
// A (TTC 1000) ou palier B (TTC 5000) sur la valeur absolue du TTC; tout autre
// montant ne rapporte rien.
func Calculer(activites []activite.Activite) Resume {
	var resume Resume

	totalHT := decimal.Zero
	for _, a := range Filtrer(activites) {
		if a.IsEchangePayant || strings.EqualFold(a.Cmouvmt, activite.MouvementPayech) {
			resume.NbEchangePayant++
			continue
		}
		if a.EstCreatTerminal() {
			ttc := math.Abs(a.MontantTTC)
			switch ttc {
			case PrixTerminalA:
				resume.NbTerminal1000++
			case PrixTerminalB:
				resume.NbTerminal5000++
			}
			continue
		}
		totalHT = totalHT.Add(decimal.NewFromFloat(a.MontantHT))
	}

	resume.TotalHT, _ = totalHT.Round(2).Float64()
	resume.CommissionPourcentage = CommissionSurHT(resume.TotalHT)
	resume.CommissionTerminal = float64(resume.NbTerminal1000*CommissionTerminalA +
		resume.NbTerminal5000*CommissionTerminalB)

	resume.TotalCommission = Round2(resume.CommissionPourcentage + resume.CommissionTerminal)

	return resume
}
