package recap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/partenaire"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func serviceDeTest(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, partenaire.Migrate(db))
	require.NoError(t, activite.Migrate(db))
	require.NoError(t, Migrate(db))

	return NewService(db, t.TempDir(), zerolog.Nop())
}

func creerPartenaire(t *testing.T, db *gorm.DB, numdist, nomdist string) partenaire.Partenaire {
	t.Helper()
	p := partenaire.Partenaire{Numdist: numdist, Nomdist: nomdist, IsPartner: true, Actif: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func creerActivite(t *testing.T, db *gorm.DB, partenaireID uint, cmouvmt string, ttc, ht float64, d time.Time, article string) {
	t.Helper()
	require.NoError(t, db.Create(&activite.Activite{
		PartenaireID:  partenaireID,
		Cmouvmt:       cmouvmt,
		MontantTTC:    ttc,
		MontantHT:     ht,
		DateOperation: d,
		Article:       article,
	}).Error)
}

func TestResumePourMoisFiltreLaPeriode(t *testing.T) {
	s := serviceDeTest(t)
	p := creerPartenaire(t, s.DB, "123", "Alpha")

	creerActivite(t, s.DB, p.ID, "VENTE", 11800, 10000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "")
	// Hors période : ne doit pas compter.
	creerActivite(t, s.DB, p.ID, "VENTE", 11800, 10000, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), "")
	creerActivite(t, s.DB, p.ID, "PREST", 5000, 4237.29, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), "")

	resume, err := s.ResumePourMois(p.ID, 2025, 3)
	require.NoError(t, err)

	assert.InDelta(t, 10000.0, resume.TotalHT, 1e-9)
	assert.InDelta(t, 400.0, resume.CommissionPourcentage, 1e-9)
}

func TestGenererCreeLeFichierEtLaLigne(t *testing.T) {
	s := serviceDeTest(t)
	p := creerPartenaire(t, s.DB, "123", "Alpha")
	creerActivite(t, s.DB, p.ID, "VENTE", 11800, 10000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "")

	rec, contenu, err := s.Generer(p, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, p.ID, rec.PartenaireID)
	assert.True(t, rec.Mois.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, len(contenu) > 4)
	assert.Equal(t, "%PDF", string(contenu[:4]))

	chemin := filepath.Join(s.Dir, NomFichier("123", 2025, 3))
	assert.Equal(t, chemin, rec.FichierPDF)
	_, err = os.Stat(chemin)
	assert.NoError(t, err)
}

func TestGenererEstIdempotent(t *testing.T) {
	s := serviceDeTest(t)
	p := creerPartenaire(t, s.DB, "123", "Alpha")
	creerActivite(t, s.DB, p.ID, "VENTE", 11800, 10000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "")

	_, premier, err := s.Generer(p, 2025, 3)
	require.NoError(t, err)

	// De nouvelles activités après coup ne changent pas un récap déjà émis.
	creerActivite(t, s.DB, p.ID, "VENTE", 23600, 20000, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "")

	_, second, err := s.Generer(p, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, premier, second)

	fichiers, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, fichiers, 1)

	var nbRecaps int64
	require.NoError(t, s.DB.Model(&RecapMensuel{}).Count(&nbRecaps).Error)
	assert.EqualValues(t, 1, nbRecaps)
}

func TestGenererRaccrocheUnFichierSansLigne(t *testing.T) {
	s := serviceDeTest(t)
	p := creerPartenaire(t, s.DB, "123", "Alpha")

	// Fichier déjà sur disque, aucune ligne en base.
	require.NoError(t, os.MkdirAll(s.Dir, 0o755))
	chemin := filepath.Join(s.Dir, NomFichier("123", 2025, 3))
	require.NoError(t, os.WriteFile(chemin, []byte("%PDF-existant"), 0o644))

	rec, contenu, err := s.Generer(p, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-existant"), contenu)
	assert.Equal(t, chemin, rec.FichierPDF)
	assert.False(t, rec.DateGenere.IsZero())

	var enBase RecapMensuel
	require.NoError(t, s.DB.First(&enBase, rec.ID).Error)
	assert.Equal(t, chemin, enBase.FichierPDF)
	assert.False(t, enBase.DateGenere.IsZero())
}

func TestGenererSansActivite(t *testing.T) {
	s := serviceDeTest(t)
	p := creerPartenaire(t, s.DB, "123", "Alpha")

	// Un mois vide donne un récap à zéro, pas une erreur.
	rec, contenu, err := s.Generer(p, 2025, 3)
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Equal(t, "%PDF", string(contenu[:4]))
}

func TestGenererPourMoisTousLesPartenaires(t *testing.T) {
	s := serviceDeTest(t)
	alpha := creerPartenaire(t, s.DB, "123", "Alpha")
	beta := creerPartenaire(t, s.DB, "456", "Beta")
	creerActivite(t, s.DB, alpha.ID, "VENTE", 11800, 10000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "")
	creerActivite(t, s.DB, beta.ID, "VENTE", 5900, 5000, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "")

	s.GenererPourMois(2025, 3)

	fichiers, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, fichiers, 2)

	var nbRecaps int64
	require.NoError(t, s.DB.Model(&RecapMensuel{}).Count(&nbRecaps).Error)
	assert.EqualValues(t, 2, nbRecaps)
}

func TestNomFichier(t *testing.T) {
	assert.Equal(t, "recap_123_7_2025.pdf", NomFichier("123", 2025, 7))
}

func TestBornesMois(t *testing.T) {
	debut, fin := BornesMois(2025, 2)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), debut)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), fin)

	debut, fin = BornesMois(2024, 2)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), debut)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), fin)
}
