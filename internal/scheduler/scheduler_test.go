package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"seoulmarket/server/internal/dataset"
)

type countingLoader struct {
	sales   atomic.Int32
	rentals atomic.Int32
	err     error
}

func (l *countingLoader) Sales(ctx context.Context) (*dataset.SalesDataset, error) {
	l.sales.Add(1)
	return &dataset.SalesDataset{}, l.err
}

func (l *countingLoader) Rentals(ctx context.Context) (*dataset.RentalDataset, error) {
	l.rentals.Add(1)
	return &dataset.RentalDataset{}, l.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestJobType_String(t *testing.T) {
	assert.Equal(t, "sales", JobTypeSales.String())
	assert.Equal(t, "rentals", JobTypeRentals.String())
	assert.Equal(t, "unknown", JobType(9).String())
}

func TestRunOnce(t *testing.T) {
	loader := &countingLoader{}
	s := NewScheduler(loader, quietLogger(), 0)

	assert.NoError(t, s.RunOnce())
	assert.Equal(t, int32(1), loader.sales.Load())
	assert.Equal(t, int32(1), loader.rentals.Load())
}

func TestRunOnce_JoinsErrors(t *testing.T) {
	loader := &countingLoader{err: dataset.ErrDataAccess}
	s := NewScheduler(loader, quietLogger(), 0)

	err := s.RunOnce()
	assert.True(t, errors.Is(err, dataset.ErrDataAccess))
	// a failing sales job does not skip rentals
	assert.Equal(t, int32(1), loader.rentals.Load())
}

func TestScheduler_Ticks(t *testing.T) {
	loader := &countingLoader{}
	s := NewScheduler(loader, quietLogger(), 10*time.Millisecond)
	s.Start()

	assert.Eventually(t, func() bool {
		return loader.sales.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	after := loader.sales.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, loader.sales.Load())
}

func TestScheduler_StartupOnly(t *testing.T) {
	loader := &countingLoader{}
	s := NewScheduler(loader, quietLogger(), 0)
	s.Start()

	assert.Eventually(t, func() bool {
		return loader.rentals.Load() == 1
	}, time.Second, 5*time.Millisecond)
	s.Stop()
	assert.Equal(t, int32(1), loader.sales.Load())
}
