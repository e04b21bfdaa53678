package scheduler

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"seoulmarket/server/internal/dataset"
)

// JobType names the dataset a refresh job touches.
type JobType int

const (
	JobTypeSales JobType = iota
	JobTypeRentals
)

func (j JobType) String() string {
	switch j {
	case JobTypeSales:
		return dataset.KindSales
	case JobTypeRentals:
		return dataset.KindRentals
	default:
		return "unknown"
	}
}

// Loader is satisfied by dataset.Store. Calling either method revalidates
// the cached dataset against the file on disk and reloads it if it changed.
type Loader interface {
	Sales(ctx context.Context) (*dataset.SalesDataset, error)
	Rentals(ctx context.Context) (*dataset.RentalDataset, error)
}

// Scheduler periodically revalidates the datasets so a replaced export is
// parsed in the background instead of on the next request.
type Scheduler struct {
	loader   Loader
	logger   *logrus.Logger
	interval time.Duration
	timeout  time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // jobs never overlap
}

// NewScheduler creates a scheduler. An interval of zero or less only runs
// the startup refresh.
func NewScheduler(loader Loader, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		loader:   loader,
		logger:   logger,
		interval: interval,
		timeout:  2 * time.Minute,
		stopChan: make(chan struct{}),
	}
}

// Start runs a refresh immediately and then on every tick.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup dataset refresh")
	s.RunOnce()

	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce refreshes both datasets in turn and returns their errors joined.
func (s *Scheduler) RunOnce() error {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return errors.Join(
		s.runJob(ctx, JobTypeSales, func(ctx context.Context) error {
			_, err := s.loader.Sales(ctx)
			return err
		}),
		s.runJob(ctx, JobTypeRentals, func(ctx context.Context) error {
			_, err := s.loader.Rentals(ctx)
			return err
		}),
	)
}

func (s *Scheduler) runJob(ctx context.Context, job JobType, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)

	entry := s.logger.WithFields(logrus.Fields{
		"job_type":    job.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("Refresh job failed")
		return err
	}
	entry.Debug("Refresh job completed")
	return nil
}

// Stop waits for a running job to finish and stops the ticker.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
