package partenaire

import (
	"gorm.io/gorm"
)

type Repository interface {
	TrouverParNumdist(db *gorm.DB, numdist string) (*Partenaire, error)
	TrouverParID(db *gorm.DB, id uint) (*Partenaire, error)
	ListerPartenaires(db *gorm.DB) ([]Partenaire, error)
	ListerParNumdists(db *gorm.DB, numdists []string) ([]Partenaire, error)
	ExisteAdminAvecNumdist(db *gorm.DB, numdist string) (bool, error)
	Sauver(db *gorm.DB, p *Partenaire) error
	CreerEnLot(db *gorm.DB, ps []*Partenaire) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) TrouverParNumdist(db *gorm.DB, numdist string) (*Partenaire, error) {
	var p Partenaire
	if err := db.Where("numdist = ?", numdist).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) TrouverParID(db *gorm.DB, id uint) (*Partenaire, error) {
	var p Partenaire
	err := db.First(&p, id).Error
	return &p, err
}

// ListerPartenaires retourne uniquement les comptes partenaires (pas les admins).
func (r *repositoryImpl) ListerPartenaires(db *gorm.DB) ([]Partenaire, error) {
	var ps []Partenaire
	err := db.Where("is_partner = ?", true).Order("nomdist").Find(&ps).Error
	return ps, err
}

func (r *repositoryImpl) ListerParNumdists(db *gorm.DB, numdists []string) ([]Partenaire, error) {
	var ps []Partenaire
	err := db.Where("numdist IN ?", numdists).Find(&ps).Error
	return ps, err
}

// ExisteAdminAvecNumdist vérifie si un numdist est déjà pris par un compte admin.
func (r *repositoryImpl) ExisteAdminAvecNumdist(db *gorm.DB, numdist string) (bool, error) {
	var count int64
	err := db.Model(&Partenaire{}).
		Where("numdist = ? AND is_admin = ?", numdist, true).
		Count(&count).Error
	return count > 0, err
}

func (r *repositoryImpl) Sauver(db *gorm.DB, p *Partenaire) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) CreerEnLot(db *gorm.DB, ps []*Partenaire) error {
	if len(ps) == 0 {
		return nil
	}
	return db.Create(ps).Error
}
