package repository

import (
	"encoding/json"
	"os"

	"dispute-resolution-backend/internal/models"

	"go.uber.org/zap"
)

// TransactionCatalog is the read-only set of transactions loaded once at
// startup. It is immutable afterwards and safe for concurrent readers.
type TransactionCatalog struct {
	byID    map[string]models.Transaction
	ordered []models.Transaction
}

// LoadTransactionCatalog reads the JSON data file. Any failure degrades to
// an empty catalog rather than refusing to boot; every subsequent lookup
// then reports the transaction as missing.
func LoadTransactionCatalog(path string, logger *zap.Logger) *TransactionCatalog {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read transaction data file, starting with empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewTransactionCatalog(nil, logger)
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		logger.Error("Failed to parse transaction data file, starting with empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewTransactionCatalog(nil, logger)
	}

	catalog := NewTransactionCatalog(transactions, logger)
	logger.Info("Transaction catalog loaded",
		zap.String("path", path),
		zap.Int("transactions", catalog.Len()),
	)
	return catalog
}

// NewTransactionCatalog builds a catalog from already-decoded transactions,
// enforcing the identifier invariants once at the boundary.
func NewTransactionCatalog(transactions []models.Transaction, logger *zap.Logger) *TransactionCatalog {
	catalog := &TransactionCatalog{byID: make(map[string]models.Transaction)}
	for _, tx := range transactions {
		if tx.TransactionID == "" || tx.CustomerID == "" {
			logger.Warn("Skipping transaction with missing identifiers",
				zap.String("transaction_id", tx.TransactionID),
			)
			continue
		}
		if _, dup := catalog.byID[tx.TransactionID]; dup {
			logger.Warn("Skipping duplicate transaction id",
				zap.String("transaction_id", tx.TransactionID),
			)
			continue
		}
		catalog.byID[tx.TransactionID] = tx
		catalog.ordered = append(catalog.ordered, tx)
	}
	return catalog
}

func (c *TransactionCatalog) Get(transactionID string) (models.Transaction, bool) {
	tx, ok := c.byID[transactionID]
	return tx, ok
}

// ListForCustomer returns the customer's transactions in load order.
func (c *TransactionCatalog) ListForCustomer(customerID string) []models.Transaction {
	result := make([]models.Transaction, 0)
	for _, tx := range c.ordered {
		if tx.CustomerID == customerID {
			result = append(result, tx)
		}
	}
	return result
}

func (c *TransactionCatalog) Len() int {
	return len(c.ordered)
}
