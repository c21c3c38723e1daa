// Package importation implémente l'import des fichiers Excel d'activité.
//
// Le parsing se fait en deux phases : détection de la ligne d'en-tête parmi
// les premières lignes du fichier (DetectHeader), puis décodage typé de chaque
// ligne qui retourne soit une Ligne propre soit une raison d'écart (DecodeRow).
package importation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fadco/partner-recap/internal/commission"
	"github.com/xuri/excelize/v2"
)

// Colonnes obligatoires du fichier d'activité.
var ColonnesRequises = []string{"NUMDIST", "NOMDIST", "CMOUVMT", "MONTANT_TTC", "DATE", "LARTICLE"}

// Nombre maximal de lignes inspectées pour trouver l'en-tête.
const FenetreEnTete = 10

// ErrEnTeteIntrouvable : aucune ligne d'en-tête valide dans la fenêtre
// d'inspection. L'import entier est abandonné, rien n'est persisté.
var ErrEnTeteIntrouvable = errors.New("impossible de détecter les colonnes dans le fichier Excel")

var (
	reSuffixeNumdist = regexp.MustCompile(`\.0$`)
	reMontant        = regexp.MustCompile(`[^\d,.\-]`)
)

// SkipReason classe les lignes écartées pendant le décodage.
type SkipReason int

const (
	SkipAucune SkipReason = iota
	SkipManqueInfo
	SkipErreur
)

// Ligne est une ligne d'activité nettoyée, prête à être rattachée à un partenaire.
type Ligne struct {
	Numdist    string
	Nomdist    string
	Cmouvmt    string
	MontantTTC float64
	MontantHT  float64
	Date       time.Time
	Article    string
}

// DetectHeader cherche la ligne d'en-tête parmi les FenetreEnTete premières
// lignes : les cellules sont normalisées (trim + majuscules) et toutes les
// colonnes requises doivent y figurer. Retourne l'index de la ligne d'en-tête
// et la position de chaque colonne requise.
func DetectHeader(rows [][]string) (int, map[string]int, error) {
	limite := len(rows)
	if limite > FenetreEnTete {
		limite = FenetreEnTete
	}

	for i := 0; i < limite; i++ {
		positions := make(map[string]int, len(ColonnesRequises))
		for j, cell := range rows[i] {
			nom := strings.ToUpper(strings.TrimSpace(cell))
			if _, deja := positions[nom]; !deja {
				positions[nom] = j
			}
		}

		toutes := true
		for _, col := range ColonnesRequises {
			if _, ok := positions[col]; !ok {
				toutes = false
				break
			}
		}
		if toutes {
			cols := make(map[string]int, len(ColonnesRequises))
			for _, col := range ColonnesRequises {
				cols[col] = positions[col]
			}
			return i, cols, nil
		}
	}
	return 0, nil, ErrEnTeteIntrouvable
}

// DecodeRow convertit une ligne brute en Ligne typée, ou retourne la raison
// pour laquelle elle est écartée.
func DecodeRow(row []string, cols map[string]int) (Ligne, SkipReason) {
	var l Ligne

	l.Numdist = NettoyerNumdist(cellule(row, cols["NUMDIST"]))
	l.Nomdist = strings.TrimSpace(cellule(row, cols["NOMDIST"]))
	l.Cmouvmt = strings.ToUpper(strings.TrimSpace(cellule(row, cols["CMOUVMT"])))
	l.Article = strings.TrimSpace(cellule(row, cols["LARTICLE"]))

	if l.Numdist == "" || l.Nomdist == "" || l.Cmouvmt == "" {
		return l, SkipManqueInfo
	}

	// Un montant illisible vaut 0, la ligne reste importée.
	l.MontantTTC = ParserMontant(cellule(row, cols["MONTANT_TTC"]))
	l.MontantHT = commission.MontantHT(l.MontantTTC)

	date, ok := ParserDate(cellule(row, cols["DATE"]))
	if !ok {
		return l, SkipManqueInfo
	}
	l.Date = date

	return l, SkipAucune
}

// NettoyerNumdist supprime l'artefact ".0" laissé par la conversion
// numérique -> texte du tableur.
func NettoyerNumdist(v string) string {
	return reSuffixeNumdist.ReplaceAllString(strings.TrimSpace(v), "")
}

// ParserMontant nettoie et convertit un montant : seuls chiffres, virgule,
// point et signe sont conservés, la virgule décimale devient un point. Une
// valeur inexploitable vaut 0.
func ParserMontant(v string) float64 {
	nettoye := reMontant.ReplaceAllString(strings.TrimSpace(v), "")
	nettoye = strings.ReplaceAll(nettoye, ",", ".")
	montant, err := strconv.ParseFloat(nettoye, 64)
	if err != nil {
		return 0
	}
	return montant
}

var formatsDate = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-06",
	"02-01-2006",
	time.RFC3339,
}

// ParserDate essaie les formats texte connus puis le numéro de série Excel.
func ParserDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}

	for _, layout := range formatsDate {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
	}

	if serie, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serie, false); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
	}

	return time.Time{}, false
}

func cellule(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
