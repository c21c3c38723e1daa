package recap

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository encapsule les opérations de base pour RecapMensuel.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// TrouverOuCreer retourne le récap du couple (partenaire, mois), en le créant
// s'il n'existe pas encore.
func (r *Repository) TrouverOuCreer(db *gorm.DB, partenaireID uint, mois time.Time) (*RecapMensuel, error) {
	var recap RecapMensuel
	err := db.Where("partenaire_id = ? AND mois = ?", partenaireID, mois).First(&recap).Error
	if err == nil {
		return &recap, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recap = RecapMensuel{PartenaireID: partenaireID, Mois: mois}
	if err := db.Create(&recap).Error; err != nil {
		return nil, err
	}
	return &recap, nil
}

// ListerParPartenaire retourne les récaps d'un partenaire, du plus récent au
// plus ancien.
func (r *Repository) ListerParPartenaire(partenaireID uint) ([]RecapMensuel, error) {
	var list []RecapMensuel
	err := r.DB.Where("partenaire_id = ?", partenaireID).Order("mois DESC").Find(&list).Error
	return list, err
}

// DernierParPartenaire retourne le récap le plus récent d'un partenaire.
func (r *Repository) DernierParPartenaire(partenaireID uint) (*RecapMensuel, error) {
	var recap RecapMensuel
	err := r.DB.Where("partenaire_id = ?", partenaireID).Order("mois DESC").First(&recap).Error
	if err != nil {
		return nil, err
	}
	return &recap, nil
}

func (r *Repository) TrouverParID(id uint) (*RecapMensuel, error) {
	var recap RecapMensuel
	if err := r.DB.First(&recap, id).Error; err != nil {
		return nil, err
	}
	return &recap, nil
}

func (r *Repository) Sauver(db *gorm.DB, recap *RecapMensuel) error {
	return db.Save(recap).Error
}
