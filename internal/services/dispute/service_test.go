package dispute

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"dispute-resolution-backend/internal/metrics"
	"dispute-resolution-backend/internal/models"
	"dispute-resolution-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.NewDisputeMetrics()

type stubAnalyzer struct {
	result models.Assessment
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ models.Transaction, _ models.DisputeRequest) models.Assessment {
	return s.result
}

func testTransaction(id, customerID string, age time.Duration, amount float64) models.Transaction {
	return models.Transaction{
		TransactionID:   id,
		CustomerID:      customerID,
		Date:            models.NewDateTime(time.Now().Add(-age)),
		Merchant:        "Woolworths",
		Amount:          decimal.NewFromFloat(amount),
		Category:        "Groceries",
		TransactionType: models.TransactionPurchase,
		PaymentMethod:   models.PaymentCard,
		Location:        "Sydney, NSW",
	}
}

func newTestService(txs []models.Transaction, result models.Assessment) *Service {
	catalog := repository.NewTransactionCatalog(txs, zap.NewNop())
	return NewService(
		catalog,
		repository.NewMemoryDisputeStore(),
		&stubAnalyzer{result: result},
		nil,
		testMetrics,
		zap.NewNop(),
		decimal.NewFromFloat(10000),
		60,
	)
}

func highAssessment() models.Assessment {
	return models.Assessment{
		Analysis:           "Likely unauthorized based on location mismatch",
		FraudLikelihood:    models.FraudLikelihoodHigh,
		RecommendedActions: []string{"Block card"},
	}
}

func TestCreateDispute_TransactionNotFound(t *testing.T) {
	svc := newTestService(nil, highAssessment())

	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "missing",
		Reason:        "unauthorized",
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, KindTransactionNotFound, vErr.Kind)
}

func TestCreateDispute_OwnershipMismatch(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, highAssessment())

	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C2",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, KindOwnershipMismatch, vErr.Kind)
}

func TestCreateDispute_WindowExpired(t *testing.T) {
	tx := testTransaction("T1", "C1", 90*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, highAssessment())

	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, KindDisputeWindowExpired, vErr.Kind)
	assert.Equal(t, 90, vErr.DaysSinceTransaction)
	assert.Contains(t, vErr.Message, "60-day dispute window")
}

func TestCreateDispute_ExactlyAtWindowBoundaryIsAllowed(t *testing.T) {
	tx := testTransaction("T1", "C1", 60*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, highAssessment())

	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})
	assert.NoError(t, err)
}

func TestCreateDispute_AmountExceedsLimit(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 10000.01)
	svc := newTestService([]models.Transaction{tx}, highAssessment())

	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, KindAmountExceedsLimit, vErr.Kind)
	assert.True(t, vErr.Amount.Equal(decimal.NewFromFloat(10000.01)))
}

func TestCreateDispute_ResolutionEstimateByLikelihood(t *testing.T) {
	cases := []struct {
		likelihood models.FraudLikelihood
		days       int
	}{
		{models.FraudLikelihoodHigh, 5},
		{models.FraudLikelihoodMedium, 10},
		{models.FraudLikelihoodLow, 21},
		{models.FraudLikelihoodUnknown, 21},
		{models.FraudLikelihoodError, 21},
		// Values outside the documented enum are accepted and treated as slow.
		{models.FraudLikelihood("SOMEWHAT_SUSPICIOUS"), 21},
	}

	for _, tc := range cases {
		t.Run(string(tc.likelihood), func(t *testing.T) {
			tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
			svc := newTestService([]models.Transaction{tx}, models.Assessment{
				Analysis:        "analysis",
				FraudLikelihood: tc.likelihood,
			})
			fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
			svc.now = func() time.Time { return fixed }

			resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
				CustomerID:    "C1",
				TransactionID: "T1",
				Reason:        "unauthorized",
			})
			require.NoError(t, err)

			want := fixed.AddDate(0, 0, tc.days).Format(models.DateLayout)
			assert.Equal(t, want, resp.EstimatedResolutionTime.Format(models.DateLayout))
		})
	}
}

func TestCreateDispute_ReferenceNumber(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, highAssessment())

	resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^DSP-[0-9A-F]{8}$`), resp.ReferenceNumber)
	assert.Equal(t, "DSP-"+strings.ToUpper(resp.DisputeID[:8]), resp.ReferenceNumber)
}

func TestCreateDispute_Success(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, models.Assessment{
		Analysis:           "Transaction pattern matches known fraud indicators",
		FraudLikelihood:    models.FraudLikelihoodHigh,
		RecommendedActions: []string{"Block card"},
	})

	resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
		Description:   "I did not make this purchase",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DisputeUnderReview, resp.Status)
	assert.Equal(t, []string{"Block card"}, resp.NextSteps)
	assert.Equal(t, "T1", resp.TransactionID)
	assert.Equal(t, "C1", resp.CustomerID)
	assert.Equal(t, time.Now().AddDate(0, 0, 5).Format(models.DateLayout),
		resp.EstimatedResolutionTime.Format(models.DateLayout))

	stored, ok := svc.GetDispute(resp.DisputeID)
	require.True(t, ok)
	assert.Equal(t, "I did not make this purchase", stored.Description)
}

func TestCreateDispute_DefaultsForEmptyAssessmentFields(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, models.Assessment{
		FraudLikelihood: models.FraudLikelihoodLow,
	})

	resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Your dispute is being reviewed"}, resp.NextSteps)
	assert.Equal(t, "Analysis in progress", resp.AIAssessment)
}

func TestCreateDispute_AnalyzerFailureStillCreatesDispute(t *testing.T) {
	tx := testTransaction("T1", "C1", 3*24*time.Hour, 50)
	svc := newTestService([]models.Transaction{tx}, models.Assessment{
		Analysis:           "Error analyzing dispute",
		FraudLikelihood:    models.FraudLikelihoodError,
		RecommendedActions: []string{"System error, please try again or contact support"},
	})

	resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C1",
		TransactionID: "T1",
		Reason:        "unauthorized",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DisputeUnderReview, resp.Status)
	assert.Equal(t, time.Now().AddDate(0, 0, 21).Format(models.DateLayout),
		resp.EstimatedResolutionTime.Format(models.DateLayout))

	stored, ok := svc.GetDispute(resp.DisputeID)
	require.True(t, ok)
	assert.Equal(t, models.FraudLikelihoodError, stored.Assessment.FraudLikelihood)
}

func TestGetCustomerDisputes_ReturnsAllInOrder(t *testing.T) {
	txs := []models.Transaction{
		testTransaction("T1", "C1", 3*24*time.Hour, 50),
		testTransaction("T2", "C1", 5*24*time.Hour, 75),
		testTransaction("T3", "C1", 7*24*time.Hour, 20),
		testTransaction("T4", "C2", 3*24*time.Hour, 30),
	}
	svc := newTestService(txs, highAssessment())

	var created []string
	for _, id := range []string{"T1", "T2", "T3"} {
		resp, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
			CustomerID:    "C1",
			TransactionID: id,
			Reason:        "unauthorized",
		})
		require.NoError(t, err)
		created = append(created, resp.DisputeID)
	}
	_, err := svc.CreateDispute(context.Background(), models.DisputeRequest{
		CustomerID:    "C2",
		TransactionID: "T4",
		Reason:        "unauthorized",
	})
	require.NoError(t, err)

	disputes := svc.GetCustomerDisputes("C1")
	require.Len(t, disputes, 3)
	for i, d := range disputes {
		assert.Equal(t, created[i], d.DisputeID)
		individual, ok := svc.GetDispute(d.DisputeID)
		require.True(t, ok)
		assert.Equal(t, d.DisputeID, individual.DisputeID)
	}
}
