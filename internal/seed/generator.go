package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"dispute-resolution-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Australian merchants
var merchants = []string{
	"Woolworths", "Coles", "Bunnings", "Kmart", "JB Hi-Fi",
	"Dan Murphy's", "Officeworks", "Chemist Warehouse", "Myer",
	"David Jones", "Harvey Norman", "Aldi", "IGA", "Target",
	"Westfield", "7-Eleven", "BP", "Shell", "Caltex",
	"McDonald's", "KFC", "Hungry Jack's", "Subway", "Domino's",
	"Uber", "Uber Eats", "Deliveroo", "Menulog", "Netflix",
	"Spotify", "Stan", "Telstra", "Optus", "Vodafone",
	"Commonwealth Bank", "NAB", "ANZ", "Westpac", "Bendigo Bank",
}

var categories = []string{
	"Groceries", "Retail", "Dining", "Entertainment", "Transport",
	"Utilities", "Health", "Education", "Travel", "Services",
}

var transactionTypes = []models.TransactionType{
	models.TransactionPurchase, models.TransactionPayment, models.TransactionTransfer,
	models.TransactionWithdrawal, models.TransactionRefund,
}

var paymentMethods = []models.PaymentMethod{
	models.PaymentCard, models.PaymentDirectDebit, models.PaymentBPAY,
	models.PaymentOsko, models.PaymentPayID, models.PaymentCash,
}

var locations = []string{
	"Sydney, NSW", "Melbourne, VIC", "Brisbane, QLD",
	"Perth, WA", "Adelaide, SA", "Hobart, TAS",
	"Darwin, NT", "Canberra, ACT",
}

// Fraudulent transactions follow different patterns so the synthetic data
// gives the reasoning service something to chew on.
var fraudMerchants = []string{
	"Unknown Online Store", "Foreign Exchange Service",
	"Crypto Trading Platform", "Unrecognized Merchant",
	"International Transfer", "Gaming Platform",
	"Digital Wallet Top-up", "Overseas Subscription",
}

var fraudCategories = []string{"Unknown", "International", "Digital"}

var fraudLocations = []string{
	"Unknown Location", "Overseas", "Foreign IP",
	"Different State", "Unusual Location",
}

// generateCardNumber fabricates a card number in Australian issuer formats.
func generateCardNumber(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0: // Visa
		return fmt.Sprintf("4%04d %04d %04d %04d", rng.Intn(9000)+1000, rng.Intn(9000)+1000, rng.Intn(9000)+1000, rng.Intn(9000)+1000)
	case 1: // Mastercard
		return fmt.Sprintf("5%03d %04d %04d %04d", rng.Intn(900)+100, rng.Intn(9000)+1000, rng.Intn(9000)+1000, rng.Intn(9000)+1000)
	default:
		return fmt.Sprintf("6%03d %04d %04d %04d", rng.Intn(900)+100, rng.Intn(9000)+1000, rng.Intn(9000)+1000, rng.Intn(9000)+1000)
	}
}

func generateBSBAccount(rng *rand.Rand) string {
	return fmt.Sprintf("BSB: %03d-%03d, Account: %08d", rng.Intn(900)+100, rng.Intn(900)+100, rng.Intn(90000000)+10000000)
}

// GenerateTransaction fabricates a single transaction record for a customer.
func GenerateTransaction(rng *rand.Rand, customerID string, isFraudulent bool) models.Transaction {
	date := time.Now().AddDate(0, 0, -(rng.Intn(30) + 1))

	var (
		merchant string
		amount   float64
		category string
		txType   models.TransactionType
		method   models.PaymentMethod
		location string
	)
	if isFraudulent {
		merchant = fraudMerchants[rng.Intn(len(fraudMerchants))]
		amount = 100 + rng.Float64()*1900
		category = fraudCategories[rng.Intn(len(fraudCategories))]
		txType = []models.TransactionType{models.TransactionPurchase, models.TransactionTransfer}[rng.Intn(2)]
		method = []models.PaymentMethod{models.PaymentCard, models.PaymentDirectDebit}[rng.Intn(2)]
		location = fraudLocations[rng.Intn(len(fraudLocations))]
	} else {
		merchant = merchants[rng.Intn(len(merchants))]
		amount = 5 + rng.Float64()*495
		category = categories[rng.Intn(len(categories))]
		txType = transactionTypes[rng.Intn(len(transactionTypes))]
		method = paymentMethods[rng.Intn(len(paymentMethods))]
		location = locations[rng.Intn(len(locations))]
	}

	tx := models.Transaction{
		TransactionID:   uuid.New().String(),
		CustomerID:      customerID,
		Date:            models.NewDateTime(date),
		Merchant:        merchant,
		Amount:          decimal.NewFromFloat(amount).Round(2),
		Category:        category,
		TransactionType: txType,
		PaymentMethod:   method,
		Location:        location,
		IsFraudulent:    isFraudulent,
	}
	if method == models.PaymentCard {
		card := generateCardNumber(rng)
		tx.CardNumber = &card
	}
	if method == models.PaymentDirectDebit || txType == models.TransactionTransfer {
		account := generateBSBAccount(rng)
		tx.AccountDetails = &account
	}
	return tx
}

// GenerateCustomerTransactions fabricates transactions for a fleet of
// customers with the given probability of fraudulent entries.
func GenerateCustomerTransactions(rng *rand.Rand, numCustomers, perCustomer int, fraudProbability float64) []models.Transaction {
	all := make([]models.Transaction, 0, numCustomers*perCustomer)
	for i := 1; i <= numCustomers; i++ {
		customerID := fmt.Sprintf("CUST%06d", i)
		for j := 0; j < perCustomer; j++ {
			all = append(all, GenerateTransaction(rng, customerID, rng.Float64() < fraudProbability))
		}
	}
	return all
}

// WriteDataFile persists transactions as a JSON array, creating the parent
// directory when needed.
func WriteDataFile(path string, transactions []models.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

// EnsureDataFile generates synthetic data when the data file is absent, so
// a fresh checkout starts with something to serve.
func EnsureDataFile(path string, logger *zap.Logger) {
	if _, err := os.Stat(path); err == nil {
		logger.Info("Using existing data file", zap.String("path", path))
		return
	}

	logger.Info("Generating synthetic transaction data", zap.String("path", path))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	transactions := GenerateCustomerTransactions(rng, 10, 20, 0.1)
	if err := WriteDataFile(path, transactions); err != nil {
		logger.Error("Failed to write synthetic data file", zap.String("path", path), zap.Error(err))
	}
}
