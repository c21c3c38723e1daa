package partenaire

import (
	"gorm.io/gorm"
)

// Partenaire représente un distributeur partenaire (ou un compte administrateur).
// Les partenaires sont créés automatiquement lors de l'import Excel : le mot de
// passe initial est le numdist.
type Partenaire struct {
	gorm.Model
	Numdist    string `json:"numdist" gorm:"size:50;uniqueIndex"`
	Nomdist    string `json:"nomdist" gorm:"size:255"`
	MotDePasse string `json:"-"`
	IsPartner  bool   `json:"isPartner" gorm:"default:false"`
	IsAdmin    bool   `json:"isAdmin" gorm:"default:false"`
	Actif      bool   `json:"actif" gorm:"default:true"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Partenaire{})
}
