package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Source identifies a file and the encoding it is written in.
type Source struct {
	Path     string
	Encoding Encoding
}

// Version identifies one revision of a source file on disk.
type Version struct {
	Size    int64
	ModTime time.Time
}

// Same reports whether v and o describe the same file revision.
func (v Version) Same(o Version) bool {
	return v.Size == o.Size && v.ModTime.Equal(o.ModTime)
}

// LoadEvent describes one completed load attempt.
type LoadEvent struct {
	Kind     string
	Source   string
	Version  Version
	Rows     int
	Dropped  int
	Duration time.Duration
	Err      error
}

// LoadObserver is notified after every load attempt, cached hits excluded.
type LoadObserver interface {
	ObserveLoad(LoadEvent)
}

const (
	KindSales   = "sales"
	KindRentals = "rentals"
)

type entry struct {
	version Version
	value   any
}

// Store hands out shared read-only datasets. Each source is loaded once per
// version; concurrent callers of a cold source wait on a single load.
type Store struct {
	sales     Source
	rentals   Source
	logger    *logrus.Logger
	observers []LoadObserver

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]entry
}

func NewStore(sales, rentals Source, logger *logrus.Logger, observers ...LoadObserver) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	s := &Store{
		sales:   sales,
		rentals: rentals,
		logger:  logger,
		entries: make(map[string]entry),
	}
	for _, o := range observers {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
	return s
}

// Sales returns the sales dataset, loading it on first use or after the
// file changed.
func (s *Store) Sales(ctx context.Context) (*SalesDataset, error) {
	v, err := s.get(ctx, KindSales, s.sales, func(path string, enc Encoding) (any, int, int, error) {
		ds, err := LoadSales(path, enc)
		if err != nil {
			return nil, 0, 0, err
		}
		return ds, ds.Len(), ds.Dropped, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SalesDataset), nil
}

// Rentals returns the rental dataset, loading it on first use or after the
// file changed.
func (s *Store) Rentals(ctx context.Context) (*RentalDataset, error) {
	v, err := s.get(ctx, KindRentals, s.rentals, func(path string, enc Encoding) (any, int, int, error) {
		ds, err := LoadRentals(path, enc)
		if err != nil {
			return nil, 0, 0, err
		}
		return ds, ds.Len(), 0, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*RentalDataset), nil
}

type loadFunc func(path string, enc Encoding) (value any, rows, dropped int, err error)

func (s *Store) get(ctx context.Context, kind string, src Source, load loadFunc) (any, error) {
	path, err := filepath.Abs(src.Path)
	if err != nil {
		return nil, accessError(src.Path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, accessError(path, err)
	}
	version := Version{Size: info.Size(), ModTime: info.ModTime()}

	cacheKey := kind + "|" + path
	s.mu.RLock()
	cached, ok := s.entries[cacheKey]
	s.mu.RUnlock()
	if ok && cached.version.Same(version) {
		return cached.value, nil
	}

	key := fmt.Sprintf("%s|%d|%d", cacheKey, version.Size, version.ModTime.UnixNano())
	ch := s.group.DoChan(key, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.entries[cacheKey]
		s.mu.RUnlock()
		if ok && cached.version.Same(version) {
			return cached.value, nil
		}

		start := time.Now()
		value, rows, dropped, err := load(path, src.Encoding)
		event := LoadEvent{
			Kind:     kind,
			Source:   path,
			Version:  version,
			Rows:     rows,
			Dropped:  dropped,
			Duration: time.Since(start),
			Err:      err,
		}
		s.notify(event)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[cacheKey] = entry{version: version, value: value}
		s.mu.Unlock()
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (s *Store) notify(event LoadEvent) {
	fields := logrus.Fields{
		"kind":        event.Kind,
		"source":      event.Source,
		"rows":        event.Rows,
		"dropped":     event.Dropped,
		"duration_ms": event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		s.logger.WithFields(fields).WithError(event.Err).Error("Failed to load dataset")
	} else {
		s.logger.WithFields(fields).Info("Loaded dataset")
	}
	for _, o := range s.observers {
		o.ObserveLoad(event)
	}
}
