package facture

import (
	"time"

	"gorm.io/gorm"
)

// FacturePartenaire est la facture déposée par un partenaire pour un récap.
// Au plus une facture par couple (récap, partenaire), vérifié applicativement.
type FacturePartenaire struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PartenaireID uint      `gorm:"not null;index" json:"partenaireId"`
	RecapID      uint      `gorm:"not null;index" json:"recapId"`
	FichierPDF   string    `gorm:"size:512;not null" json:"fichierPDF"`
	DateEnvoi    time.Time `gorm:"autoCreateTime" json:"dateEnvoi"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&FacturePartenaire{})
}
