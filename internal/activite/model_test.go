package activite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbDeTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestBeforeSaveMarqueEchangePayant(t *testing.T) {
	db := dbDeTest(t)

	a := Activite{
		PartenaireID:  1,
		Cmouvmt:       "payech",
		MontantTTC:    1180,
		MontantHT:     1000,
		DateOperation: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&a).Error)

	assert.True(t, a.IsEchangePayant)
}

func TestBeforeSaveForceMontantsCreatPositifs(t *testing.T) {
	db := dbDeTest(t)

	a := Activite{
		PartenaireID:  1,
		Cmouvmt:       "CREAT",
		MontantTTC:    -1000,
		MontantHT:     -847.46,
		DateOperation: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Article:       "Terminal TPE",
	}
	require.NoError(t, db.Create(&a).Error)

	assert.InDelta(t, 1000.0, a.MontantTTC, 1e-9)
	assert.InDelta(t, 847.46, a.MontantHT, 1e-9)
	assert.False(t, a.IsEchangePayant)
}

func TestBeforeSaveLaisseLesAutresMouvements(t *testing.T) {
	db := dbDeTest(t)

	a := Activite{
		PartenaireID:  1,
		Cmouvmt:       "VENTE",
		MontantTTC:    -500,
		MontantHT:     -423.73,
		DateOperation: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&a).Error)

	assert.InDelta(t, -500.0, a.MontantTTC, 1e-9)
	assert.False(t, a.IsEchangePayant)
}

func TestArticleTerminal(t *testing.T) {
	assert.True(t, ArticleTerminal("Terminal TPE"))
	assert.True(t, ArticleTerminal("TERMINAL X"))
	assert.True(t, ArticleTerminal("terminal"))
	assert.False(t, ArticleTerminal("Carte SIM"))
	assert.False(t, ArticleTerminal("Term"))
	assert.False(t, ArticleTerminal(""))
}

func TestListerPourPeriodeExcluePrestEtBornes(t *testing.T) {
	db := dbDeTest(t)
	repo := NewRepository(db)

	jour := func(j int) time.Time { return time.Date(2025, 3, j, 0, 0, 0, 0, time.UTC) }
	pour := func(cmouvmt string, d time.Time) Activite {
		return Activite{PartenaireID: 7, Cmouvmt: cmouvmt, DateOperation: d}
	}

	require.NoError(t, db.Create(&[]Activite{
		pour("VENTE", jour(1)),
		pour("PREST", jour(2)),
		pour("VENTE", jour(31)),
		pour("VENTE", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		{PartenaireID: 8, Cmouvmt: "VENTE", DateOperation: jour(5)},
	}).Error)

	list, err := repo.ListerPourPeriode(7, jour(1), jour(31))
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.True(t, list[0].DateOperation.Equal(jour(1)))
	assert.True(t, list[1].DateOperation.Equal(jour(31)))
}
