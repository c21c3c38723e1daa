package importation

import (
	"fmt"
	"io"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/partenaire"
	"github.com/fadco/partner-recap/internal/utils"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Resultat récapitule un import : lignes importées et lignes écartées.
type Resultat struct {
	Importees          int `json:"importees"`
	IgnoreesManqueInfo int `json:"ignoreesManqueInfo"`
	IgnoreesErreur     int `json:"ignoreesErreur"`
}

// Message retourne le résumé lisible affiché après l'import.
func (r Resultat) Message() string {
	return fmt.Sprintf("Importation terminée : %d lignes importées, %d ignorées (infos manquantes), %d erreurs.",
		r.Importees, r.IgnoreesManqueInfo, r.IgnoreesErreur)
}

// Service orchestre l'import complet : parsing, résolution des partenaires et
// insertion des activités dans une seule transaction.
type Service struct {
	DB          *gorm.DB
	Partenaires partenaire.Repository
	Activites   *activite.Repository
	Log         zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{
		DB:          db,
		Partenaires: partenaire.NewRepository(),
		Activites:   activite.NewRepository(db),
		Log:         log.With().Str("component", "importation").Logger(),
	}
}

// Importer lit le fichier Excel et persiste partenaires et activités.
// L'absence d'en-tête est fatale et ne persiste rien; une ligne invalide est
// comptée et n'interrompt jamais le lot.
func (s *Service) Importer(reader io.Reader) (Resultat, error) {
	var resultat Resultat

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return resultat, fmt.Errorf("lecture du fichier Excel: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return resultat, fmt.Errorf("lecture de la feuille %q: %w", sheet, err)
	}

	headerIdx, cols, err := DetectHeader(rows)
	if err != nil {
		return resultat, err
	}

	var lignes []Ligne
	for _, row := range rows[headerIdx+1:] {
		ligne, skip := DecodeRow(row, cols)
		switch skip {
		case SkipManqueInfo:
			resultat.IgnoreesManqueInfo++
		case SkipErreur:
			resultat.IgnoreesErreur++
		default:
			lignes = append(lignes, ligne)
		}
	}

	aCreer, aSauver, err := s.resoudrePartenaires(lignes)
	if err != nil {
		return resultat, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Partenaires.CreerEnLot(tx, aCreer); err != nil {
			return fmt.Errorf("création des partenaires: %w", err)
		}
		for _, p := range aSauver {
			if err := s.Partenaires.Sauver(tx, p); err != nil {
				return fmt.Errorf("mise à jour du partenaire %s: %w", p.Numdist, err)
			}
		}

		// Re-résolution après écriture : les créations doivent être visibles.
		parNumdist, err := s.mapParNumdist(tx, lignes)
		if err != nil {
			return err
		}

		activites := make([]activite.Activite, 0, len(lignes))
		for _, l := range lignes {
			cmouvmt := Reclasser(l.Cmouvmt, l.Article, l.MontantTTC)

			p, ok := parNumdist[l.Numdist]
			if !ok {
				resultat.IgnoreesManqueInfo++
				continue
			}

			activites = append(activites, activite.Activite{
				PartenaireID:  p.ID,
				Cmouvmt:       cmouvmt,
				MontantTTC:    l.MontantTTC,
				MontantHT:     l.MontantHT,
				DateOperation: l.Date,
				Article:       l.Article,
			})
			resultat.Importees++
		}

		if err := s.Activites.CreerEnLots(tx, activites); err != nil {
			return fmt.Errorf("insertion des activités: %w", err)
		}
		return nil
	})
	if err != nil {
		return Resultat{}, err
	}

	s.Log.Info().
		Int("importees", resultat.Importees).
		Int("manque_info", resultat.IgnoreesManqueInfo).
		Int("erreurs", resultat.IgnoreesErreur).
		Msg("import terminé")

	return resultat, nil
}

// resoudrePartenaires prépare les créations et mises à jour de partenaires à
// partir des numdist distincts du fichier. Un numdist déjà pris par un compte
// admin est ignoré : jamais de fusion avec un administrateur.
func (s *Service) resoudrePartenaires(lignes []Ligne) (aCreer []*partenaire.Partenaire, aSauver []*partenaire.Partenaire, err error) {
	nomParNumdist := make(map[string]string)
	var ordre []string
	for _, l := range lignes {
		if l.Numdist == "" {
			continue
		}
		if _, vu := nomParNumdist[l.Numdist]; !vu {
			nomParNumdist[l.Numdist] = l.Nomdist
			ordre = append(ordre, l.Numdist)
		}
	}

	existants, err := s.Partenaires.ListerParNumdists(s.DB, ordre)
	if err != nil {
		return nil, nil, fmt.Errorf("résolution des partenaires: %w", err)
	}
	parNumdist := make(map[string]*partenaire.Partenaire, len(existants))
	for i := range existants {
		parNumdist[existants[i].Numdist] = &existants[i]
	}

	for _, numdist := range ordre {
		admin, err := s.Partenaires.ExisteAdminAvecNumdist(s.DB, numdist)
		if err != nil {
			return nil, nil, err
		}
		if admin {
			s.Log.Warn().Str("numdist", numdist).Msg("numdist déjà utilisé par un admin, ignoré")
			continue
		}

		nomdist := nomParNumdist[numdist]
		p := parNumdist[numdist]
		if p == nil {
			hash, err := utils.HashMotDePasse(numdist)
			if err != nil {
				return nil, nil, fmt.Errorf("mot de passe initial pour %s: %w", numdist, err)
			}
			aCreer = append(aCreer, &partenaire.Partenaire{
				Numdist:    numdist,
				Nomdist:    nomdist,
				MotDePasse: hash,
				IsPartner:  true,
				Actif:      true,
			})
		} else if p.Nomdist != nomdist {
			p.Nomdist = nomdist
			aSauver = append(aSauver, p)
		}
	}
	return aCreer, aSauver, nil
}

// mapParNumdist recharge les partenaires référencés par les lignes, admins
// exclus, pour rattacher les activités.
func (s *Service) mapParNumdist(tx *gorm.DB, lignes []Ligne) (map[string]partenaire.Partenaire, error) {
	vus := make(map[string]bool)
	var numdists []string
	for _, l := range lignes {
		if l.Numdist != "" && !vus[l.Numdist] {
			vus[l.Numdist] = true
			numdists = append(numdists, l.Numdist)
		}
	}

	existants, err := s.Partenaires.ListerParNumdists(tx, numdists)
	if err != nil {
		return nil, fmt.Errorf("rechargement des partenaires: %w", err)
	}

	parNumdist := make(map[string]partenaire.Partenaire, len(existants))
	for _, p := range existants {
		if p.IsAdmin {
			continue
		}
		parNumdist[p.Numdist] = p
	}
	return parNumdist, nil
}
