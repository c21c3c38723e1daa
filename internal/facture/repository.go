package facture

import (
	"gorm.io/gorm"
)

// Repository encapsule les opérations de base pour FacturePartenaire.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ExistePourRecap vérifie si le partenaire a déjà déposé une facture pour ce récap.
func (r *Repository) ExistePourRecap(recapID, partenaireID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&FacturePartenaire{}).
		Where("recap_id = ? AND partenaire_id = ?", recapID, partenaireID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Creer(db *gorm.DB, f *FacturePartenaire) error {
	return db.Create(f).Error
}

// ListerParPartenaire retourne les factures d'un partenaire, les plus récentes d'abord.
func (r *Repository) ListerParPartenaire(partenaireID uint) ([]FacturePartenaire, error) {
	var list []FacturePartenaire
	err := r.DB.Where("partenaire_id = ?", partenaireID).Order("created_at DESC").Find(&list).Error
	return list, err
}
