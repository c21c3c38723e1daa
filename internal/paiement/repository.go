package paiement

import (
	"gorm.io/gorm"
)

// Repository encapsule les opérations de base pour PaiementCommission.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Creer(db *gorm.DB, p *PaiementCommission) error {
	return db.Create(p).Error
}

func (r *Repository) TrouverParID(id uint) (*PaiementCommission, error) {
	var p PaiementCommission
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListerTous retourne tous les paiements, les plus récents d'abord.
func (r *Repository) ListerTous() ([]PaiementCommission, error) {
	var list []PaiementCommission
	err := r.DB.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListerParPartenaire retourne les paiements liés aux récaps d'un partenaire.
func (r *Repository) ListerParPartenaire(partenaireID uint) ([]PaiementCommission, error) {
	var list []PaiementCommission
	err := r.DB.
		Joins("JOIN recap_mensuels ON recap_mensuels.id = paiement_commissions.recap_id").
		Where("recap_mensuels.partenaire_id = ?", partenaireID).
		Order("paiement_commissions.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) Sauver(p *PaiementCommission) error {
	return r.DB.Save(p).Error
}
