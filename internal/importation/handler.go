package importation

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fadco/partner-recap/internal/utils"
)

const tailleMaxFichier = 32 << 20 // 32 MiB

// Handler expose l'import Excel (admin uniquement).
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Importer traite POST /import : champ multipart "fichier_excel", .xls ou .xlsx.
func (h *Handler) Importer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(tailleMaxFichier); err != nil {
		http.Error(w, "formulaire invalide", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("fichier_excel")
	if err != nil {
		http.Error(w, "Aucun fichier sélectionné.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xls" && ext != ".xlsx" {
		http.Error(w, "Fichier non pris en charge (.xls ou .xlsx uniquement).", http.StatusBadRequest)
		return
	}

	resultat, err := h.Service.Importer(file)
	if err != nil {
		if errors.Is(err, ErrEnTeteIntrouvable) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Service.Log.Error().Err(err).Str("fichier", header.Filename).Msg("échec de l'import")
		http.Error(w, "Erreur lors de l'importation.", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  resultat.Message(),
		"resultat": resultat,
	})
}
