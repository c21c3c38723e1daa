package facture

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/paiement"
	"github.com/fadco/partner-recap/internal/recap"
	"github.com/fadco/partner-recap/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const tailleMaxFacture = 16 << 20 // 16 MiB

// Handler gère le dépôt de factures par les partenaires.
type Handler struct {
	DB     *gorm.DB
	Repo   *Repository
	Recaps *recap.Repository
	Dir    string
}

func NewHandler(db *gorm.DB, dir string) *Handler {
	return &Handler{
		DB:     db,
		Repo:   NewRepository(db),
		Recaps: recap.NewRepository(db),
		Dir:    dir,
	}
}

// MesFactures retourne GET /factures : les factures du partenaire connecté.
func (h *Handler) MesFactures(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repo.ListerParPartenaire(userID)
	if err != nil {
		http.Error(w, "erreur lors du listage des factures", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// Uploader traite POST /recaps/{id}/facture : dépôt du PDF de facture pour un
// récap. Crée le paiement associé en attente, dans la même transaction.
func (h *Handler) Uploader(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID invalide", http.StatusBadRequest)
		return
	}
	h.uploaderPourRecap(w, r, uint(id))
}

// UploaderDerniere traite POST /facture : dépôt sur le récap le plus récent.
func (h *Handler) UploaderDerniere(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	dernier, err := h.Recaps.DernierParPartenaire(userID)
	if err != nil {
		http.Error(w, "Aucun récapitulatif disponible.", http.StatusNotFound)
		return
	}
	h.uploaderPourRecap(w, r, dernier.ID)
}

func (h *Handler) uploaderPourRecap(w http.ResponseWriter, r *http.Request, recapID uint) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	rec, err := h.Recaps.TrouverParID(recapID)
	if err != nil || rec.PartenaireID != userID {
		http.Error(w, "récap introuvable", http.StatusNotFound)
		return
	}

	deja, err := h.Repo.ExistePourRecap(rec.ID, userID)
	if err != nil {
		http.Error(w, "erreur lors de la vérification", http.StatusInternalServerError)
		return
	}
	if deja {
		http.Error(w, "Vous avez déjà envoyé une facture pour ce récapitulatif.", http.StatusConflict)
		return
	}

	if err := r.ParseMultipartForm(tailleMaxFacture); err != nil {
		http.Error(w, "formulaire invalide", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("facture_pdf")
	if err != nil {
		http.Error(w, "Aucun fichier sélectionné.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		http.Error(w, "Fichier non pris en charge (.pdf uniquement).", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		http.Error(w, "erreur lors de l'enregistrement", http.StatusInternalServerError)
		return
	}
	chemin := filepath.Join(h.Dir, fmt.Sprintf("facture_%d_%d.pdf", userID, rec.ID))
	dst, err := os.Create(chemin)
	if err != nil {
		http.Error(w, "erreur lors de l'enregistrement", http.StatusInternalServerError)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "erreur lors de l'enregistrement", http.StatusInternalServerError)
		return
	}

	f := FacturePartenaire{
		PartenaireID: userID,
		RecapID:      rec.ID,
		FichierPDF:   chemin,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repo.Creer(tx, &f); err != nil {
			return err
		}
		return paiement.NewRepository(tx).Creer(tx, &paiement.PaiementCommission{
			RecapID:   rec.ID,
			FactureID: f.ID,
			Statut:    paiement.StatutEnAttente,
		})
	})
	if err != nil {
		http.Error(w, "erreur lors de la sauvegarde de la facture", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Facture envoyée avec succès.",
		"facture": f,
	})
}
