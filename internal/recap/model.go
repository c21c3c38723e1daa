package recap

import (
	"time"

	"gorm.io/gorm"
)

// RecapMensuel référence le PDF récapitulatif généré pour un partenaire et un
// mois donné. Mois stocke le premier jour du mois; le couple (partenaire,
// mois) est unique.
type RecapMensuel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PartenaireID uint      `gorm:"not null;uniqueIndex:idx_recap_partenaire_mois" json:"partenaireId"`
	Mois         time.Time `gorm:"not null;uniqueIndex:idx_recap_partenaire_mois" json:"mois"`
	FichierPDF   string    `gorm:"size:512" json:"fichierPDF"`
	DateGenere   time.Time `json:"dateGenere"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RecapMensuel{})
}
