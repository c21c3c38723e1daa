package paiement

import (
	"time"

	"gorm.io/gorm"
)

// Statuts possibles d'un paiement de commission.
const (
	StatutEnAttente = "en_attente"
	StatutEffectue  = "effectue"
)

// Moyens de paiement acceptés.
const (
	MoyenMomo        = "momo"
	MoyenReversement = "reversement"
)

// PaiementCommission suit le règlement de la commission d'un récap : créé en
// attente au dépôt de la facture, passé à effectué par un admin uniquement.
type PaiementCommission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RecapID        uint      `gorm:"not null;uniqueIndex" json:"recapId"`
	FactureID      uint      `gorm:"not null;uniqueIndex" json:"factureId"`
	Statut         string    `gorm:"size:20;not null;default:'en_attente';index" json:"statut"`
	MoyenPaiement  string    `gorm:"size:20" json:"moyenPaiement,omitempty"`
	MessageAdmin   string    `json:"messageAdmin,omitempty"`
	DateValidation time.Time `gorm:"autoCreateTime" json:"dateValidation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func StatutValide(statut string) bool {
	return statut == StatutEnAttente || statut == StatutEffectue
}

func MoyenValide(moyen string) bool {
	return moyen == "" || moyen == MoyenMomo || moyen == MoyenReversement
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PaiementCommission{})
}
