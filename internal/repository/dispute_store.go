package repository

import (
	"fmt"
	"sync"

	"dispute-resolution-backend/internal/models"
)

// DisputeStore owns all dispute records. Records are immutable after
// insertion; only the dispute evaluator writes here.
type DisputeStore interface {
	Insert(dispute *models.Dispute) error
	Get(disputeID string) (*models.Dispute, bool)
	ListForCustomer(customerID string) []*models.Dispute
}

// MemoryDisputeStore keeps disputes in process memory, lost on restart.
// Insertion-order listing matches what customers saw when filing.
type MemoryDisputeStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.Dispute
	ordered []*models.Dispute
}

func NewMemoryDisputeStore() *MemoryDisputeStore {
	return &MemoryDisputeStore{byID: make(map[string]*models.Dispute)}
}

func (s *MemoryDisputeStore) Insert(dispute *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[dispute.DisputeID]; exists {
		return fmt.Errorf("dispute %s already exists", dispute.DisputeID)
	}
	s.byID[dispute.DisputeID] = dispute
	s.ordered = append(s.ordered, dispute)
	return nil
}

func (s *MemoryDisputeStore) Get(disputeID string) (*models.Dispute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dispute, ok := s.byID[disputeID]
	return dispute, ok
}

func (s *MemoryDisputeStore) ListForCustomer(customerID string) []*models.Dispute {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Dispute, 0)
	for _, d := range s.ordered {
		if d.CustomerID == customerID {
			result = append(result, d)
		}
	}
	return result
}
