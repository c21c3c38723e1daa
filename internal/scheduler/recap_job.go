package scheduler

import (
	"github.com/fadco/partner-recap/internal/recap"
)

// RecapMensuelJob déclenche la génération des récaps du mois précédent pour
// tous les partenaires. Le service sous-jacent est idempotent : relancer le
// job ne produit pas de second fichier.
type RecapMensuelJob struct {
	Service *recap.Service
}

func (j *RecapMensuelJob) Name() string { return "recap-mensuel" }

func (j *RecapMensuelJob) Run() error {
	j.Service.GenererMoisPrecedent()
	return nil
}
