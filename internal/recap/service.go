package recap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/commission"
	"github.com/fadco/partner-recap/internal/partenaire"
	"github.com/fadco/partner-recap/internal/pdfgen"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Service génère les récapitulatifs mensuels : calcul de commission, rendu PDF
// et enregistrement du fichier. La génération est idempotente par couple
// (partenaire, mois) : un fichier déjà présent n'est jamais régénéré.
type Service struct {
	DB          *gorm.DB
	Partenaires partenaire.Repository
	Activites   *activite.Repository
	Recaps      *Repository
	Dir         string
	Log         zerolog.Logger
}

func NewService(db *gorm.DB, dir string, log zerolog.Logger) *Service {
	return &Service{
		DB:          db,
		Partenaires: partenaire.NewRepository(),
		Activites:   activite.NewRepository(db),
		Recaps:      NewRepository(db),
		Dir:         dir,
		Log:         log.With().Str("component", "recap").Logger(),
	}
}

// BornesMois retourne le premier et le dernier jour du mois.
func BornesMois(year, month int) (time.Time, time.Time) {
	debut := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 1, -1)
	return debut, fin
}

// NomFichier construit le nom déterministe du PDF d'un récap.
func NomFichier(numdist string, year, month int) string {
	return fmt.Sprintf("recap_%s_%d_%d.pdf", numdist, month, year)
}

// ResumePourMois calcule le résumé de commission d'un partenaire pour un mois,
// via le même calcul que le tableau de bord et le batch.
func (s *Service) ResumePourMois(partenaireID uint, year, month int) (commission.Resume, error) {
	debut, fin := BornesMois(year, month)
	activites, err := s.Activites.ListerPourPeriode(partenaireID, debut, fin)
	if err != nil {
		return commission.Resume{}, fmt.Errorf("activités du partenaire %d: %w", partenaireID, err)
	}
	return commission.Calculer(activites), nil
}

// Generer produit (ou retrouve) le récap d'un partenaire pour un mois donné et
// retourne le contenu du PDF. Si le fichier existe déjà, il est servi tel quel
// sans recalcul ni réécriture. En cas d'échec du rendu, rien n'est persisté.
func (s *Service) Generer(p partenaire.Partenaire, year, month int) (*RecapMensuel, []byte, error) {
	debut, _ := BornesMois(year, month)
	chemin := filepath.Join(s.Dir, NomFichier(p.Numdist, year, month))

	if contenu, err := os.ReadFile(chemin); err == nil {
		recap, err := s.Recaps.TrouverOuCreer(s.DB, p.ID, debut)
		if err != nil {
			return nil, nil, err
		}
		// Fichier écrit mais ligne jamais complétée lors d'un passage précédent.
		if recap.FichierPDF == "" {
			recap.FichierPDF = chemin
			recap.DateGenere = time.Now()
			if err := s.Recaps.Sauver(s.DB, recap); err != nil {
				return nil, nil, err
			}
		}
		return recap, contenu, nil
	}

	resume, err := s.ResumePourMois(p.ID, year, month)
	if err != nil {
		return nil, nil, err
	}

	contenu, err := pdfgen.RendreRecap(p, resume, debut, time.Now())
	if err != nil {
		s.Log.Error().Err(err).Str("numdist", p.Numdist).Msg("échec du rendu PDF")
		return nil, nil, err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("dossier des récaps: %w", err)
	}
	if err := os.WriteFile(chemin, contenu, 0o644); err != nil {
		return nil, nil, fmt.Errorf("écriture du PDF: %w", err)
	}

	recap, err := s.Recaps.TrouverOuCreer(s.DB, p.ID, debut)
	if err != nil {
		return nil, nil, err
	}
	recap.FichierPDF = chemin
	recap.DateGenere = time.Now()
	if err := s.Recaps.Sauver(s.DB, recap); err != nil {
		return nil, nil, err
	}

	s.Log.Info().Str("numdist", p.Numdist).Int("mois", month).Int("annee", year).Msg("récap généré")
	return recap, contenu, nil
}

// GenererPourMois génère les récaps d'un mois pour tous les partenaires,
// séquentiellement. L'échec d'un partenaire n'arrête pas les autres.
func (s *Service) GenererPourMois(year, month int) {
	partenaires, err := s.Partenaires.ListerPartenaires(s.DB)
	if err != nil {
		s.Log.Error().Err(err).Msg("listage des partenaires impossible")
		return
	}

	for _, p := range partenaires {
		if _, _, err := s.Generer(p, year, month); err != nil {
			s.Log.Error().Err(err).Str("numdist", p.Numdist).Msg("génération du récap échouée")
		}
	}
}

// GenererMoisPrecedent génère les récaps du mois calendaire qui vient de se
// terminer (point d'entrée du batch mensuel).
func (s *Service) GenererMoisPrecedent() {
	today := time.Now()
	year, month := today.Year(), int(today.Month())
	if month == 1 {
		year--
		month = 12
	} else {
		month--
	}

	s.Log.Info().Int("mois", month).Int("annee", year).Msg("génération des récapitulatifs")
	s.GenererPourMois(year, month)
}
