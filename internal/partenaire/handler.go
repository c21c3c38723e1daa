package partenaire

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsule DB et repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login génère un JWT pour des identifiants valides.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload invalide", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.TrouverParNumdist(h.DB, req.Login)
	if err != nil || !user.Actif {
		http.Error(w, "identifiants invalides", http.StatusUnauthorized)
		return
	}

	if !utils.VerifierMotDePasse(user.MotDePasse, req.Password) {
		http.Error(w, "mot de passe incorrect", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenererToken(user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "erreur lors de la génération du token", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListerPartenaires retourne tous les partenaires (admin) ou uniquement le sien.
func (h *Handler) ListerPartenaires(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin := r.Context().Value(auth.CtxIsAdmin).(bool)

	if isAdmin {
		ps, err := h.Repository.ListerPartenaires(h.DB)
		if err != nil {
			http.Error(w, "erreur lors du listage des partenaires", http.StatusInternalServerError)
			return
		}
		dtos := make([]ResumePartenaireDTO, 0, len(ps))
		for _, p := range ps {
			dtos = append(dtos, VersResumeDTO(p))
		}
		utils.RespondJSON(w, http.StatusOK, dtos)
		return
	}

	p, err := h.Repository.TrouverParID(h.DB, userID)
	if err != nil {
		http.Error(w, "partenaire introuvable", http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, []ResumePartenaireDTO{VersResumeDTO(*p)})
}

// TrouverParID retourne un partenaire par ID (soi-même, ou n'importe qui pour un admin).
func (h *Handler) TrouverParID(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin := r.Context().Value(auth.CtxIsAdmin).(bool)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID invalide", http.StatusBadRequest)
		return
	}
	if !isAdmin && uint(id) != userID {
		http.Error(w, "accès refusé", http.StatusForbidden)
		return
	}

	p, err := h.Repository.TrouverParID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "partenaire introuvable", http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, VersResumeDTO(*p))
}

// ReinitialiserMotDePasse attribue un mot de passe temporaire à un partenaire
// et le retourne en clair, à transmettre hors bande. Réservé aux admins.
func (h *Handler) ReinitialiserMotDePasse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID invalide", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.TrouverParID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "partenaire introuvable", http.StatusNotFound)
		return
	}

	temporaire, err := utils.GenererMotDePasseTemporaire()
	if err != nil {
		http.Error(w, "erreur lors de la génération du mot de passe", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashMotDePasse(temporaire)
	if err != nil {
		http.Error(w, "erreur lors du traitement du mot de passe", http.StatusInternalServerError)
		return
	}

	p.MotDePasse = hash
	if err := h.Repository.Sauver(h.DB, p); err != nil {
		http.Error(w, "erreur lors de la sauvegarde", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"motDePasseTemporaire": temporaire})
}

// ChangerMotDePasse remplace le mot de passe du compte connecté.
func (h *Handler) ChangerMotDePasse(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	var req ChangerMotDePasseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload invalide", http.StatusBadRequest)
		return
	}
	if req.NouveauMotDePasse == "" {
		http.Error(w, "nouveau mot de passe requis", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.TrouverParID(h.DB, userID)
	if err != nil {
		http.Error(w, "partenaire introuvable", http.StatusNotFound)
		return
	}
	if !utils.VerifierMotDePasse(p.MotDePasse, req.AncienMotDePasse) {
		http.Error(w, "ancien mot de passe incorrect", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashMotDePasse(req.NouveauMotDePasse)
	if err != nil {
		http.Error(w, "erreur lors du traitement du mot de passe", http.StatusInternalServerError)
		return
	}
	p.MotDePasse = hash
	if err := h.Repository.Sauver(h.DB, p); err != nil {
		http.Error(w, "erreur lors de la sauvegarde", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "mot de passe modifié"})
}
