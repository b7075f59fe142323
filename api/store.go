package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"statease/domain/dataset"
	"statease/internal/errors"
)

// StoredDataset is one uploaded dataset held in memory for the lifetime of
// the process. There is no persistence; restarting the server clears all
// uploads.
type StoredDataset struct {
	ID         string
	Filename   string
	Dataset    *dataset.Dataset
	UploadedAt time.Time
}

// Store is the in-memory dataset registry keyed by upload id.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*StoredDataset
	order    []string
}

func NewStore() *Store {
	return &Store{datasets: make(map[string]*StoredDataset)}
}

// Put registers a dataset and returns its generated id.
func (s *Store) Put(filename string, ds *dataset.Dataset) *StoredDataset {
	stored := &StoredDataset{
		ID:         uuid.New().String(),
		Filename:   filename,
		Dataset:    ds,
		UploadedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.datasets[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()
	return stored
}

// Get looks a dataset up by id.
func (s *Store) Get(id string) (*StoredDataset, error) {
	s.mu.RLock()
	stored, ok := s.datasets[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("dataset " + id)
	}
	return stored, nil
}

// List returns all stored datasets in upload order.
func (s *Store) List() []*StoredDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StoredDataset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.datasets[id])
	}
	return out
}
