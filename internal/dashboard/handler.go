// Package dashboard expose le tableau de bord d'activité des partenaires.
package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/commission"
	"github.com/fadco/partner-recap/internal/utils"
)

// Handler sert le tableau de bord du partenaire connecté.
type Handler struct {
	Repo *activite.Repository
}

func NewHandler(repo *activite.Repository) *Handler {
	return &Handler{Repo: repo}
}

// DashboardDTO regroupe les activités de la période et le résumé de commission.
type DashboardDTO struct {
	DateDebut        string                         `json:"dateDebut"`
	DateFin          string                         `json:"dateFin"`
	ActivitesParJour map[string][]activite.Activite `json:"activitesParJour"`
	EchangesPayants  []activite.Activite            `json:"echangesPayants"`
	CreatTerminaux   []activite.Activite            `json:"creatTerminaux"`
	Resume           commission.Resume              `json:"resume"`
}

// jourDe ramène un instant au jour calendaire de son fuseau, à minuit.
func jourDe(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Dashboard traite GET /dashboard?date_debut=…&date_fin=… pour le partenaire
// connecté. Une période absente ou illisible retombe sur aujourd'hui.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	aujourdhui := jourDe(time.Now())
	debut, fin := aujourdhui, aujourdhui
	if d, err := time.Parse("2006-01-02", r.URL.Query().Get("date_debut")); err == nil {
		if f, err := time.Parse("2006-01-02", r.URL.Query().Get("date_fin")); err == nil {
			debut, fin = d, f
		}
	}

	activites, err := h.Repo.ListerPourPeriode(userID, debut, fin)
	if err != nil {
		http.Error(w, "erreur lors du chargement des activités", http.StatusInternalServerError)
		return
	}

	dto := DashboardDTO{
		DateDebut:        debut.Format("2006-01-02"),
		DateFin:          fin.Format("2006-01-02"),
		ActivitesParJour: make(map[string][]activite.Activite),
		EchangesPayants:  []activite.Activite{},
		CreatTerminaux:   []activite.Activite{},
		Resume:           commission.Calculer(activites),
	}

	for _, a := range activites {
		switch {
		case a.IsEchangePayant || strings.EqualFold(a.Cmouvmt, activite.MouvementPayech):
			dto.EchangesPayants = append(dto.EchangesPayants, a)
		case a.EstCreatTerminal():
			dto.CreatTerminaux = append(dto.CreatTerminaux, a)
		default:
			jour := a.DateOperation.Format("2006-01-02")
			dto.ActivitesParJour[jour] = append(dto.ActivitesParJour[jour], a)
		}
	}

	utils.RespondJSON(w, http.StatusOK, dto)
}
