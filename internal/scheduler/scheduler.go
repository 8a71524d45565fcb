package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Reporter builds and exports the scenario digest.
type Reporter interface {
	BuildDigest(ctx context.Context) (string, error)
	ExportScenarios(ctx context.Context) error
}

// Notifier delivers a text message.
type Notifier interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reporter  Reporter
	notifier  Notifier
	recipient string
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in which case the digest is
// only logged.
func NewScheduler(schedule string, loc *time.Location, reporter Reporter, notifier Notifier, recipient string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  schedule,
		reporter:  reporter,
		notifier:  notifier,
		recipient: recipient,
		logger:    logger,
	}
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scenario digest failed", zap.Error(err))
	}
}

// RunOnce exports the presets, then builds and delivers the digest.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.logger.Info("generating scenario digest")

	if err := s.reporter.ExportScenarios(ctx); err != nil && !errors.Is(err, reporting.ErrExportDisabled) {
		s.logger.Error("failed to export scenarios", zap.Error(err))
	}

	digest, err := s.reporter.BuildDigest(ctx)
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	if s.notifier == nil {
		s.logger.Info("digest ready, no notifier configured", zap.String("digest", digest))
		return nil
	}

	id, err := s.notifier.SendText(ctx, s.recipient, digest)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	s.logger.Info("digest sent successfully", zap.String("message_id", id))
	return nil
}
