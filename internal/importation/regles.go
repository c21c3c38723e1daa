package importation

import (
	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/commission"
)

// Reclasser corrige un motif de saisie connu : une vente de terminal
// enregistrée en MODART au lieu de CREAT. La règle ne s'applique qu'aux
// articles "Terminal…" dont le TTC vaut exactement 1000 ou 5000.
func Reclasser(cmouvmt, article string, montantTTC float64) string {
	if cmouvmt == activite.MouvementModart &&
		activite.ArticleTerminal(article) &&
		(montantTTC == commission.PrixTerminalA || montantTTC == commission.PrixTerminalB) {
		return activite.MouvementCreat
	}
	return cmouvmt
}
