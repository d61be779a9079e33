package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	runs int
	err  error
}

func (j *fakeJob) Run() error {
	j.runs++
	return j.err
}

func (j *fakeJob) Name() string { return "fake" }

func TestScheduler_AddJobAcceptsValidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("@every 5s", &fakeJob{})
	assert.NoError(t, err)
}

func TestScheduler_AddJobRejectsInvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &fakeJob{})
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &fakeJob{}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_RunNowPropagatesJobError(t *testing.T) {
	s := New(zerolog.Nop())
	job := &fakeJob{err: errors.New("boom")}

	err := s.RunNow(job)
	assert.Error(t, err)
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &fakeJob{}))

	s.Start()
	s.Stop()
}
