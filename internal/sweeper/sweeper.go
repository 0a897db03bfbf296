package sweeper

import (
	"context"
	"time"

	"courtside/pkg/logger"

	"github.com/robfig/cron/v3"
)

// BookingExpirer is the slice of the booking service the sweeper drives.
type BookingExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

// Sweeper periodically marks overdue pending bookings as elapsed. Each tick
// is independent and idempotent, so an overlapping or missed run is harmless.
type Sweeper struct {
	cron     *cron.Cron
	expirer  BookingExpirer
	log      *logger.Logger
	schedule string
	timeout  time.Duration
}

// New creates a sweeper on the given cron schedule (standard 5-field syntax).
func New(expirer BookingExpirer, log *logger.Logger, schedule string) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		expirer:  expirer,
		log:      log,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.tick)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("expiry sweeper started", "schedule", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running tick to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("expiry sweeper stopped")
}

func (s *Sweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.expirer.ExpireOverdue(ctx); err != nil {
		s.log.ErrorWithContext(ctx, "expiry sweep tick failed", err, nil)
	}
}
