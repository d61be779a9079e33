package market

import (
	"github.com/investboard/investboard/internal/events"
)

// TickJob advances the price feed on the scheduler's fixed interval.
type TickJob struct {
	feed   *Feed
	events *events.Manager
}

// NewTickJob creates the scheduled price tick job
func NewTickJob(feed *Feed, eventManager *events.Manager) *TickJob {
	return &TickJob{
		feed:   feed,
		events: eventManager,
	}
}

// Name returns the job name
func (j *TickJob) Name() string {
	return "price_tick"
}

// Run advances every quote one step
func (j *TickJob) Run() error {
	version := j.feed.Tick()

	j.events.Emit(events.PricesTicked, "market", map[string]interface{}{
		"version": version,
	})
	return nil
}
