// Package scheduler pilote les tâches planifiées du service.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Planning de la génération mensuelle : le 1er de chaque mois à 00h10.
const PlanningRecapMensuel = "10 0 1 * *"

// Job est une tâche planifiée nommée.
type Job interface {
	Run() error
	Name() string
}

// Scheduler encapsule cron et le logging des jobs.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler démarré")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler arrêté")
}

// AddJob enregistre un job sur un planning cron.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("job échoué")
			return
		}
		s.log.Debug().Str("job", job.Name()).Msg("job terminé")
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("schedule", schedule).Str("job", job.Name()).Msg("job enregistré")
	return nil
}
