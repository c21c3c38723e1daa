package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/partenaire"
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
	require.NoError(t, partenaire.Migrate(db))
	require.NoError(t, activite.Migrate(db))
	return db
}

func requeteConnectee(target string, userID uint) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	ctx := context.WithValue(req.Context(), auth.CtxUserID, userID)
	ctx = context.WithValue(ctx, auth.CtxIsAdmin, false)
	return req.WithContext(ctx)
}

func TestDashboardRegroupeLesActivites(t *testing.T) {
	db := dbDeTest(t)
	h := NewHandler(activite.NewRepository(db))

	p := partenaire.Partenaire{Numdist: "123", Nomdist: "Alpha", IsPartner: true, Actif: true}
	require.NoError(t, db.Create(&p).Error)

	jour := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&activite.Activite{
		PartenaireID: p.ID, Cmouvmt: "VENTE", MontantTTC: 11800, MontantHT: 10000, DateOperation: jour,
	}).Error)
	require.NoError(t, db.Create(&activite.Activite{
		PartenaireID: p.ID, Cmouvmt: "PAYECH", MontantTTC: 1180, MontantHT: 1000, DateOperation: jour,
	}).Error)
	require.NoError(t, db.Create(&activite.Activite{
		PartenaireID: p.ID, Cmouvmt: "CREAT", MontantTTC: 1000, MontantHT: 847.46, DateOperation: jour, Article: "Terminal E500",
	}).Error)

	rr := httptest.NewRecorder()
	h.Dashboard(rr, requeteConnectee("/dashboard?date_debut=2025-03-01&date_fin=2025-03-31", p.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	var dto DashboardDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))

	assert.Equal(t, "2025-03-01", dto.DateDebut)
	assert.Equal(t, "2025-03-31", dto.DateFin)
	assert.Len(t, dto.ActivitesParJour["2025-03-10"], 1)
	assert.Len(t, dto.EchangesPayants, 1)
	assert.Len(t, dto.CreatTerminaux, 1)

	assert.InDelta(t, 10000.0, dto.Resume.TotalHT, 1e-9)
	assert.InDelta(t, 400.0, dto.Resume.CommissionPourcentage, 1e-9)
	assert.Equal(t, 1, dto.Resume.NbEchangePayant)
	assert.Equal(t, 1, dto.Resume.NbTerminal1000)
}

func TestDashboardPeriodeIllisible(t *testing.T) {
	db := dbDeTest(t)
	h := NewHandler(activite.NewRepository(db))

	p := partenaire.Partenaire{Numdist: "123", Nomdist: "Alpha", IsPartner: true, Actif: true}
	require.NoError(t, db.Create(&p).Error)

	rr := httptest.NewRecorder()
	h.Dashboard(rr, requeteConnectee("/dashboard?date_debut=n-importe-quoi", p.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	var dto DashboardDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))

	jour := jourDe(time.Now()).Format("2006-01-02")
	assert.Equal(t, jour, dto.DateDebut)
	assert.Equal(t, jour, dto.DateFin)
}

func TestJourDeGardeLeJourLocal(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)

	// 00h30 locale appartient encore au même jour local, pas à la veille UTC.
	instant := time.Date(2025, 7, 1, 0, 30, 0, 0, loc)
	jour := jourDe(instant)

	assert.True(t, jour.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, 1, jour.Day())
	assert.Equal(t, time.July, jour.Month())
}
