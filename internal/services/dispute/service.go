package dispute

import (
	"context"
	"strings"
	"time"

	"dispute-resolution-backend/internal/events"
	"dispute-resolution-backend/internal/metrics"
	"dispute-resolution-backend/internal/models"
	"dispute-resolution-backend/internal/repository"
	"dispute-resolution-backend/internal/services/assessment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Resolution estimates in days, driven by the assessed fraud likelihood.
// Anything outside HIGH/MEDIUM (including values the model invented) gets
// the slowest bucket.
const (
	resolutionDaysHigh    = 5
	resolutionDaysMedium  = 10
	resolutionDaysDefault = 21
)

// Service validates dispute requests against the transaction catalog and
// business rules, obtains a fraud assessment, and owns dispute creation.
type Service struct {
	catalog   *repository.TransactionCatalog
	store     repository.DisputeStore
	analyzer  assessment.Analyzer
	publisher events.DisputePublisher // nil when eventing is not configured
	metrics   *metrics.DisputeMetrics
	logger    *zap.Logger

	maxDisputeAmount  decimal.Decimal
	disputeWindowDays int

	now func() time.Time
}

func NewService(
	catalog *repository.TransactionCatalog,
	store repository.DisputeStore,
	analyzer assessment.Analyzer,
	publisher events.DisputePublisher,
	m *metrics.DisputeMetrics,
	logger *zap.Logger,
	maxDisputeAmount decimal.Decimal,
	disputeWindowDays int,
) *Service {
	return &Service{
		catalog:           catalog,
		store:             store,
		analyzer:          analyzer,
		publisher:         publisher,
		metrics:           m,
		logger:            logger,
		maxDisputeAmount:  maxDisputeAmount,
		disputeWindowDays: disputeWindowDays,
		now:               time.Now,
	}
}

// CreateDispute runs the evaluation pipeline: ordered validation that
// short-circuits on the first failure, a single assessment attempt (which
// never fails outward), then record synthesis and storage. The reasoning
// service call happens with no store lock held; only Insert touches shared
// mutable state.
func (s *Service) CreateDispute(ctx context.Context, req models.DisputeRequest) (*models.DisputeResponse, error) {
	tx, ok := s.catalog.Get(req.TransactionID)
	if !ok {
		s.metrics.RecordValidationFailure(string(KindTransactionNotFound))
		return nil, errTransactionNotFound()
	}

	if tx.CustomerID != req.CustomerID {
		s.metrics.RecordValidationFailure(string(KindOwnershipMismatch))
		return nil, errOwnershipMismatch()
	}

	daysSince := int(s.now().Sub(tx.Date.Time).Hours() / 24)
	if daysSince > s.disputeWindowDays {
		s.metrics.RecordValidationFailure(string(KindDisputeWindowExpired))
		return nil, errDisputeWindowExpired(s.disputeWindowDays, daysSince)
	}

	if tx.Amount.GreaterThan(s.maxDisputeAmount) {
		s.metrics.RecordValidationFailure(string(KindAmountExceedsLimit))
		return nil, errAmountExceedsLimit(s.maxDisputeAmount, tx.Amount)
	}

	started := time.Now()
	result := s.analyzer.Analyze(ctx, tx, req)
	s.metrics.RecordAssessmentDuration(assessmentOutcome(result), time.Since(started).Seconds())

	createdAt := s.now()
	disputeID := uuid.New().String()

	record := &models.Dispute{
		DisputeID:               disputeID,
		TransactionID:           req.TransactionID,
		CustomerID:              req.CustomerID,
		Reason:                  req.Reason,
		Description:             req.Description,
		ContactPhone:            req.ContactPhone,
		ContactEmail:            req.ContactEmail,
		Status:                  models.DisputeUnderReview,
		CreatedAt:               models.NewDateTime(createdAt),
		EstimatedResolutionTime: models.NewDate(createdAt.AddDate(0, 0, resolutionDays(result.FraudLikelihood))),
		ReferenceNumber:         referenceNumber(disputeID),
		Assessment:              result,
	}

	if err := s.store.Insert(record); err != nil {
		return nil, err
	}

	s.metrics.RecordDisputeCreated(string(result.FraudLikelihood))
	s.logger.Info("Dispute created",
		zap.String("dispute_id", disputeID),
		zap.String("transaction_id", req.TransactionID),
		zap.String("customer_id", req.CustomerID),
		zap.String("fraud_likelihood", string(result.FraudLikelihood)),
		zap.String("reference_number", record.ReferenceNumber),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishDisputeCreated(ctx, record); err != nil {
			// Eventing is best effort; the dispute is already stored.
			s.logger.Error("Failed to publish dispute-created event",
				zap.String("dispute_id", disputeID),
				zap.Error(err),
			)
		}
	}

	resp := record.Response()
	return &resp, nil
}

// GetDispute returns a stored dispute by id.
func (s *Service) GetDispute(disputeID string) (*models.Dispute, bool) {
	return s.store.Get(disputeID)
}

// GetCustomerDisputes returns the customer's disputes in insertion order.
func (s *Service) GetCustomerDisputes(customerID string) []*models.Dispute {
	return s.store.ListForCustomer(customerID)
}

// GetTransaction returns a catalog transaction by id.
func (s *Service) GetTransaction(transactionID string) (models.Transaction, bool) {
	return s.catalog.Get(transactionID)
}

// GetCustomerTransactions returns the customer's transactions in load order.
func (s *Service) GetCustomerTransactions(customerID string) []models.Transaction {
	return s.catalog.ListForCustomer(customerID)
}

func resolutionDays(likelihood models.FraudLikelihood) int {
	switch likelihood {
	case models.FraudLikelihoodHigh:
		return resolutionDaysHigh
	case models.FraudLikelihoodMedium:
		return resolutionDaysMedium
	default:
		return resolutionDaysDefault
	}
}

// referenceNumber derives the short human-facing identifier: "DSP-" plus
// the first 8 hex characters of the dispute id, upper-cased.
func referenceNumber(disputeID string) string {
	return "DSP-" + strings.ToUpper(disputeID[:8])
}

func assessmentOutcome(a models.Assessment) string {
	switch a.FraudLikelihood {
	case models.FraudLikelihoodError:
		return "call_failure"
	case models.FraudLikelihoodUnknown:
		return "parse_fallback"
	default:
		return "success"
	}
}
