package store

import (
	"sync"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

// MemoryStore guarda la tabla vigente y las inversiones manuales por cluster.
type MemoryStore struct {
	mu     sync.RWMutex
	table  *models.Table
	invest map[string]float64 // cluster key -> inversión
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{invest: make(map[string]float64)}
}

// Replace cambia la tabla entera. Las inversiones sobreviven mientras su
// cluster siga existiendo (keep), el resto se descarta.
func (s *MemoryStore) Replace(t *models.Table, keep func(key string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	for k := range s.invest {
		if keep == nil || !keep(k) {
			delete(s.invest, k)
		}
	}
}

func (s *MemoryStore) Table() (*models.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.table != nil
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
	s.invest = make(map[string]float64)
}

func (s *MemoryStore) SetInvestment(key string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invest[key] = maxf(amount)
}

func (s *MemoryStore) DeleteInvestment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.invest, key)
}

func (s *MemoryStore) Investments() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.invest))
	for k, v := range s.invest {
		out[k] = v
	}
	return out
}

func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
