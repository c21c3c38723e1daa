// Package pdfgen rend le récapitulatif mensuel au format PDF.
package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fadco/partner-recap/internal/commission"
	"github.com/fadco/partner-recap/internal/partenaire"
	"github.com/jung-kurt/gofpdf"
)

// En-tête société figurant sur chaque récapitulatif.
const (
	EntrepriseNom     = "FADCO"
	EntrepriseAdresse = "BOULEVARD DES ARMEES"
	EntrepriseIFU     = "3201641478415"
	EntrepriseBP      = "072 BP 297 / COTONOU"
	EntrepriseTel     = "0197485193"
)

var moisFrancais = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// LibelleMois formate un mois en toutes lettres ("Juillet 2025").
func LibelleMois(mois time.Time) string {
	return fmt.Sprintf("%s %d", moisFrancais[mois.Month()-1], mois.Year())
}

// RendreRecap produit le PDF récapitulatif d'un partenaire pour un mois donné.
// Le rendu est sans effet de bord : l'appelant décide de la persistance.
func RendreRecap(p partenaire.Partenaire, resume commission.Resume, mois, dateGeneration time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, EntrepriseNom, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(EntrepriseAdresse+" - "+EntrepriseBP), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("IFU : %s - Tél : %s", EntrepriseIFU, EntrepriseTel)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Récapitulatif mensuel - %s", LibelleMois(mois))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Partenaire : %s (%s)", p.Nomdist, p.Numdist)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Généré le : %s", dateGeneration.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	ligne := func(libelle, valeur string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(120, 7, tr(libelle), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(valeur), "1", 1, "R", false, 0, "")
	}

	ligne("Total HT facturable", fmt.Sprintf("%.2f", resume.TotalHT))
	ligne("Commission (4%)", fmt.Sprintf("%.2f", resume.CommissionPourcentage))
	ligne("Échanges payants", fmt.Sprintf("%d", resume.NbEchangePayant))
	ligne("Terminaux à 1000 (x 1977)", fmt.Sprintf("%d", resume.NbTerminal1000))
	ligne("Terminaux à 5000 (x 2260)", fmt.Sprintf("%d", resume.NbTerminal5000))
	ligne("Commission terminaux", fmt.Sprintf("%.2f", resume.CommissionTerminal))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, tr("Commission totale"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", resume.TotalCommission), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendu PDF: %w", err)
	}
	return buf.Bytes(), nil
}
