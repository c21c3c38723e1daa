package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type jobFictif struct{}

func (jobFictif) Name() string { return "fictif" }
func (jobFictif) Run() error   { return nil }

func TestAddJob(t *testing.T) {
	s := New(zerolog.Nop())

	assert.NoError(t, s.AddJob(PlanningRecapMensuel, jobFictif{}))
	assert.NoError(t, s.AddJob("@every 1h", jobFictif{}))
	assert.Error(t, s.AddJob("pas un planning", jobFictif{}))
}
