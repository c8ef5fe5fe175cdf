package models

import (
	"time"

	"gorm.io/datatypes"
)

// DisputeRecord is the database row backing a Dispute when a persistent
// store is configured. The assessment payload is kept as a JSON column so
// advisory fields survive round-trips without schema churn.
type DisputeRecord struct {
	Seq                 uint   `gorm:"primaryKey;autoIncrement"`
	DisputeID           string `gorm:"uniqueIndex"`
	TransactionID       string `gorm:"index"`
	CustomerID          string `gorm:"index"`
	Reason              string
	Description         string
	ContactPhone        string
	ContactEmail        string
	Status              string `gorm:"index"`
	CreatedAt           time.Time
	EstimatedResolution time.Time
	ReferenceNumber     string
	Assessment          datatypes.JSON
}
