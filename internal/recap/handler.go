package recap

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/commission"
	"github.com/fadco/partner-recap/internal/utils"

	"github.com/gorilla/mux"
)

// Handler expose les récapitulatifs aux partenaires.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// VoirRecapDTO combine les métadonnées du récap et le résumé recalculé.
type VoirRecapDTO struct {
	Recap  RecapMensuel      `json:"recap"`
	Resume commission.Resume `json:"resume"`
}

// MesRecaps retourne GET /recaps : les récaps du partenaire connecté.
func (h *Handler) MesRecaps(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	recaps, err := h.Service.Recaps.ListerParPartenaire(userID)
	if err != nil {
		http.Error(w, "erreur lors du listage des récaps", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, recaps)
}

// VoirRecap retourne GET /recaps/{id} : le récap et son résumé de commission,
// recalculé avec les mêmes règles que la génération.
func (h *Handler) VoirRecap(w http.ResponseWriter, r *http.Request) {
	recap, ok := h.recapAutorise(w, r)
	if !ok {
		return
	}

	resume, err := h.Service.ResumePourMois(recap.PartenaireID, recap.Mois.Year(), int(recap.Mois.Month()))
	if err != nil {
		http.Error(w, "erreur lors du calcul du résumé", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, VoirRecapDTO{Recap: *recap, Resume: resume})
}

// TelechargerPDF retourne GET /recaps/{id}/pdf : le fichier PDF du récap.
func (h *Handler) TelechargerPDF(w http.ResponseWriter, r *http.Request) {
	recap, ok := h.recapAutorise(w, r)
	if !ok {
		return
	}
	if recap.FichierPDF == "" {
		http.Error(w, "PDF non généré pour ce récap", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, recap.FichierPDF)
}

// GenererPDF traite POST /generate-pdf/{year}/{month} : génère (ou ressert) le
// récap du partenaire connecté et renvoie le PDF inline.
func (h *Handler) GenererPDF(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	if errY != nil || errM != nil || month < 1 || month > 12 {
		today := time.Now()
		year, month = today.Year(), int(today.Month())
	}

	p, err := h.Service.Partenaires.TrouverParID(h.Service.DB, userID)
	if err != nil {
		http.Error(w, "partenaire introuvable", http.StatusNotFound)
		return
	}

	_, contenu, err := h.Service.Generer(*p, year, month)
	if err != nil {
		http.Error(w, "Erreur génération PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", NomFichier(p.Numdist, year, month)))
	w.Write(contenu)
}

// recapAutorise charge le récap demandé et vérifie que l'appelant y a droit
// (propriétaire ou admin).
func (h *Handler) recapAutorise(w http.ResponseWriter, r *http.Request) (*RecapMensuel, bool) {
	userID := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin := r.Context().Value(auth.CtxIsAdmin).(bool)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID invalide", http.StatusBadRequest)
		return nil, false
	}

	recap, err := h.Service.Recaps.TrouverParID(uint(id))
	if err != nil {
		http.Error(w, "récap introuvable", http.StatusNotFound)
		return nil, false
	}
	if !isAdmin && recap.PartenaireID != userID {
		http.Error(w, "accès refusé", http.StatusForbidden)
		return nil, false
	}
	return recap, true
}
