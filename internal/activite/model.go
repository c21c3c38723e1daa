package activite

import (
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Codes mouvement connus.
const (
	MouvementPrest  = "PREST"  // prestation, jamais facturée
	MouvementPayech = "PAYECH" // échange payant, facturé au volume
	MouvementCreat  = "CREAT"  // création (dont terminaux à prix fixe)
	MouvementModart = "MODART"
)

// Activite représente une ligne d'activité importée depuis le fichier Excel.
type Activite struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PartenaireID    uint      `gorm:"not null;index" json:"partenaireId"`
	Cmouvmt         string    `gorm:"size:255;not null" json:"cmouvmt"`
	MontantTTC      float64   `gorm:"not null" json:"montantTTC"`
	MontantHT       float64   `gorm:"not null" json:"montantHT"`
	DateOperation   time.Time `gorm:"not null;index" json:"dateOperation"`
	Article         string    `gorm:"size:255" json:"article"`
	IsEchangePayant bool      `gorm:"default:false" json:"isEchangePayant"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave recalcule le marqueur échange payant et force les montants des
// opérations CREAT à être positifs.
func (a *Activite) BeforeSave(tx *gorm.DB) error {
	cmouvmt := strings.ToUpper(a.Cmouvmt)
	a.IsEchangePayant = cmouvmt == MouvementPayech

	if cmouvmt == MouvementCreat {
		a.MontantHT = math.Abs(a.MontantHT)
		a.MontantTTC = math.Abs(a.MontantTTC)
	}
	return nil
}

// ArticleTerminal indique si un libellé d'article désigne un terminal.
// La casse n'est pas significative : les fichiers sources mélangent
// "Terminal", "TERMINAL", etc.
func ArticleTerminal(article string) bool {
	return len(article) >= 8 && strings.EqualFold(article[:8], "Terminal")
}

// EstCreatTerminal indique si la ligne relève du barème terminal à prix fixe.
func (a *Activite) EstCreatTerminal() bool {
	return strings.EqualFold(a.Cmouvmt, MouvementCreat) && ArticleTerminal(a.Article)
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Activite{})
}
