package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Timestamp layouts used by the transaction data file and API payloads.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// DateTime marshals as "2006-01-02 15:04:05", the format the transaction
// data file uses. Parsing is strict so a bad date is rejected at load time.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Date marshals as "2006-01-02", used for resolution estimates.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

type TransactionType string

const (
	TransactionPurchase   TransactionType = "PURCHASE"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionTransfer   TransactionType = "TRANSFER"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionRefund     TransactionType = "REFUND"
)

type PaymentMethod string

const (
	PaymentCard        PaymentMethod = "CARD"
	PaymentDirectDebit PaymentMethod = "DIRECT_DEBIT"
	PaymentBPAY        PaymentMethod = "BPAY"
	PaymentOsko        PaymentMethod = "OSKO"
	PaymentPayID       PaymentMethod = "PAYID"
	PaymentCash        PaymentMethod = "CASH"
)

// Transaction is an immutable fact loaded once from the data file.
// IsFraudulent is ground truth for the synthetic data set and is never
// consulted by dispute evaluation.
type Transaction struct {
	TransactionID   string          `json:"transaction_id"`
	CustomerID      string          `json:"customer_id"`
	Date            DateTime        `json:"date"`
	Merchant        string          `json:"merchant"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	CardNumber      *string         `json:"card_number"`
	AccountDetails  *string         `json:"account_details"`
	Location        string          `json:"location"`
	IsFraudulent    bool            `json:"is_fraudulent"`
}
