package dispute

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationKind identifies which business rule rejected a dispute request.
type ValidationKind string

const (
	KindTransactionNotFound  ValidationKind = "transaction_not_found"
	KindOwnershipMismatch    ValidationKind = "ownership_mismatch"
	KindDisputeWindowExpired ValidationKind = "dispute_window_expired"
	KindAmountExceedsLimit   ValidationKind = "amount_exceeds_limit"
)

// ValidationError is a client-input rejection. It is reported synchronously,
// never retried, and never fatal to the process.
type ValidationError struct {
	Kind    ValidationKind
	Message string

	// DaysSinceTransaction is set for KindDisputeWindowExpired.
	DaysSinceTransaction int
	// Amount is set for KindAmountExceedsLimit.
	Amount decimal.Decimal
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errTransactionNotFound() *ValidationError {
	return &ValidationError{
		Kind:    KindTransactionNotFound,
		Message: "Transaction not found",
	}
}

func errOwnershipMismatch() *ValidationError {
	return &ValidationError{
		Kind:    KindOwnershipMismatch,
		Message: "Transaction does not belong to this customer",
	}
}

func errDisputeWindowExpired(windowDays, daysSince int) *ValidationError {
	return &ValidationError{
		Kind:                 KindDisputeWindowExpired,
		Message:              fmt.Sprintf("Transaction is outside the %d-day dispute window (%d days since transaction)", windowDays, daysSince),
		DaysSinceTransaction: daysSince,
	}
}

func errAmountExceedsLimit(limit, amount decimal.Decimal) *ValidationError {
	return &ValidationError{
		Kind:    KindAmountExceedsLimit,
		Message: fmt.Sprintf("Transaction amount $%s exceeds maximum dispute limit of $%s", amount.StringFixed(2), limit.StringFixed(2)),
		Amount:  amount,
	}
}
