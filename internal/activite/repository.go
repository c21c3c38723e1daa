package activite

import (
	"time"

	"gorm.io/gorm"
)

const tailleLot = 1000

// Repository encapsule les opérations de base pour Activite.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListerPourPeriode retourne les activités d'un partenaire sur [debut, fin],
// hors PREST, triées par date d'opération.
func (r *Repository) ListerPourPeriode(partenaireID uint, debut, fin time.Time) ([]Activite, error) {
	var list []Activite
	err := r.DB.
		Where("partenaire_id = ?", partenaireID).
		Where("date_operation BETWEEN ? AND ?", debut, fin).
		Where("UPPER(cmouvmt) <> ?", MouvementPrest).
		Order("date_operation").
		Find(&list).Error
	return list, err
}

// CreerEnLots insère les activités par lots de 1000.
func (r *Repository) CreerEnLots(db *gorm.DB, activites []Activite) error {
	if len(activites) == 0 {
		return nil
	}
	return db.CreateInBatches(activites, tailleLot).Error
}
