package seed

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"dispute-resolution-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateCustomerTransactions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	txs := GenerateCustomerTransactions(rng, 10, 20, 0.1)

	require.Len(t, txs, 200)

	seen := make(map[string]bool)
	customerPattern := regexp.MustCompile(`^CUST\d{6}$`)
	for _, tx := range txs {
		assert.False(t, seen[tx.TransactionID], "duplicate transaction id %s", tx.TransactionID)
		seen[tx.TransactionID] = true

		assert.Regexp(t, customerPattern, tx.CustomerID)
		assert.True(t, tx.Amount.IsPositive(), "amount must be positive, got %s", tx.Amount)

		if tx.PaymentMethod == models.PaymentCard {
			assert.NotNil(t, tx.CardNumber)
		} else {
			assert.Nil(t, tx.CardNumber)
		}
	}
}

func TestGenerateTransaction_FraudulentPattern(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tx := GenerateTransaction(rng, "CUST000001", true)

	assert.True(t, tx.IsFraudulent)
	assert.Contains(t, fraudCategories, tx.Category)
	assert.Contains(t, fraudLocations, tx.Location)
	assert.True(t, tx.Amount.GreaterThanOrEqual(decimal.NewFromInt(100)))
}

func TestWriteAndReloadDataFile(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	txs := GenerateCustomerTransactions(rng, 2, 5, 0)

	path := filepath.Join(t.TempDir(), "data", "transactions.json")
	require.NoError(t, WriteDataFile(path, txs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transaction_id")
}

func TestEnsureDataFile_GeneratesOnceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	logger := zap.NewNop()

	EnsureDataFile(path, logger)
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	EnsureDataFile(path, logger)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second, "existing data file must not be regenerated")
}
