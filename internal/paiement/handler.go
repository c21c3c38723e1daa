package paiement

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// DTO utilisé par PUT /paiements/{id} (admin).
type PaiementUpdateDTO struct {
	Statut        string `json:"statut"`
	MoyenPaiement string `json:"moyenPaiement"`
	MessageAdmin  string `json:"messageAdmin"`
}

// ListerPaiements retourne tous les paiements pour un admin, sinon ceux du
// partenaire connecté.
func (h *Handler) ListerPaiements(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin := r.Context().Value(auth.CtxIsAdmin).(bool)

	var (
		list []PaiementCommission
		err  error
	)
	if isAdmin {
		list, err = h.Repo.ListerTous()
	} else {
		list, err = h.Repo.ListerParPartenaire(userID)
	}
	if err != nil {
		http.Error(w, "erreur lors du listage des paiements", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// MettreAJour traite PUT /paiements/{id} : seul un admin change le statut
// (en_attente/effectue), le moyen de paiement et le message.
func (h *Handler) MettreAJour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID invalide", http.StatusBadRequest)
		return
	}

	var dto PaiementUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "payload invalide", http.StatusBadRequest)
		return
	}
	if dto.Statut != "" && !StatutValide(dto.Statut) {
		http.Error(w, "statut inconnu", http.StatusBadRequest)
		return
	}
	if !MoyenValide(dto.MoyenPaiement) {
		http.Error(w, "moyen de paiement inconnu", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.TrouverParID(uint(id))
	if err != nil {
		http.Error(w, "paiement introuvable", http.StatusNotFound)
		return
	}

	if dto.Statut != "" && dto.Statut != p.Statut {
		p.Statut = dto.Statut
		p.DateValidation = time.Now()
	}
	if dto.MoyenPaiement != "" {
		p.MoyenPaiement = dto.MoyenPaiement
	}
	if dto.MessageAdmin != "" {
		p.MessageAdmin = dto.MessageAdmin
	}

	if err := h.Repo.Sauver(p); err != nil {
		http.Error(w, "erreur lors de la sauvegarde", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}
