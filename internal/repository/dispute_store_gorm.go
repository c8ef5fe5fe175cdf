package repository

import (
	"encoding/json"
	"fmt"

	"dispute-resolution-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormDisputeStore persists disputes to a relational database behind the
// same contract as the in-memory store, so the evaluator never knows which
// one it is writing to.
type GormDisputeStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormDisputeStore(db *gorm.DB, logger *zap.Logger) *GormDisputeStore {
	return &GormDisputeStore{db: db, logger: logger}
}

func (s *GormDisputeStore) Insert(dispute *models.Dispute) error {
	record, err := toRecord(dispute)
	if err != nil {
		return err
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert dispute %s: %w", dispute.DisputeID, err)
	}
	return nil
}

func (s *GormDisputeStore) Get(disputeID string) (*models.Dispute, bool) {
	var record models.DisputeRecord
	err := s.db.First(&record, "dispute_id = ?", disputeID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.Error("Dispute lookup failed", zap.String("dispute_id", disputeID), zap.Error(err))
		}
		return nil, false
	}
	dispute, err := fromRecord(&record)
	if err != nil {
		s.logger.Error("Failed to decode stored dispute", zap.String("dispute_id", disputeID), zap.Error(err))
		return nil, false
	}
	return dispute, true
}

func (s *GormDisputeStore) ListForCustomer(customerID string) []*models.Dispute {
	var records []models.DisputeRecord
	err := s.db.Where("customer_id = ?", customerID).Order("seq").Find(&records).Error
	if err != nil {
		s.logger.Error("Dispute listing failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil
	}

	result := make([]*models.Dispute, 0, len(records))
	for i := range records {
		dispute, err := fromRecord(&records[i])
		if err != nil {
			s.logger.Error("Failed to decode stored dispute",
				zap.String("dispute_id", records[i].DisputeID),
				zap.Error(err),
			)
			continue
		}
		result = append(result, dispute)
	}
	return result
}

func toRecord(d *models.Dispute) (*models.DisputeRecord, error) {
	assessment, err := json.Marshal(d.Assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessment: %w", err)
	}
	return &models.DisputeRecord{
		DisputeID:           d.DisputeID,
		TransactionID:       d.TransactionID,
		CustomerID:          d.CustomerID,
		Reason:              d.Reason,
		Description:         d.Description,
		ContactPhone:        d.ContactPhone,
		ContactEmail:        d.ContactEmail,
		Status:              string(d.Status),
		CreatedAt:           d.CreatedAt.Time,
		EstimatedResolution: d.EstimatedResolutionTime.Time,
		ReferenceNumber:     d.ReferenceNumber,
		Assessment:          assessment,
	}, nil
}

func fromRecord(r *models.DisputeRecord) (*models.Dispute, error) {
	var assessment models.Assessment
	if len(r.Assessment) > 0 {
		if err := json.Unmarshal(r.Assessment, &assessment); err != nil {
			return nil, fmt.Errorf("failed to decode assessment: %w", err)
		}
	}
	return &models.Dispute{
		DisputeID:               r.DisputeID,
		TransactionID:           r.TransactionID,
		CustomerID:              r.CustomerID,
		Reason:                  r.Reason,
		Description:             r.Description,
		ContactPhone:            r.ContactPhone,
		ContactEmail:            r.ContactEmail,
		Status:                  models.DisputeStatus(r.Status),
		CreatedAt:               models.NewDateTime(r.CreatedAt),
		EstimatedResolutionTime: models.NewDate(r.EstimatedResolution),
		ReferenceNumber:         r.ReferenceNumber,
		Assessment:              assessment,
	}, nil
}
