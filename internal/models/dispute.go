package models

// DisputeStatus of a filed dispute. Only UNDER_REVIEW is assigned today;
// no further transitions are modeled.
type DisputeStatus string

const DisputeUnderReview DisputeStatus = "UNDER_REVIEW"

// FraudLikelihood is the coarse classification driving the resolution
// estimate. The reasoning service is not contractually bound to these
// values, so unrecognized ones are carried through verbatim and fall into
// the slowest resolution bucket.
type FraudLikelihood string

const (
	FraudLikelihoodHigh    FraudLikelihood = "HIGH"
	FraudLikelihoodMedium  FraudLikelihood = "MEDIUM"
	FraudLikelihoodLow     FraudLikelihood = "LOW"
	FraudLikelihoodUnknown FraudLikelihood = "UNKNOWN"
	FraudLikelihoodError   FraudLikelihood = "ERROR"
)

// DisputeRequest is the customer's dispute submission. It is validated
// against the transaction catalog and never persisted as-is.
type DisputeRequest struct {
	CustomerID    string `json:"customer_id"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
	Description   string `json:"description"`
	ContactPhone  string `json:"contact_phone,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}

// Assessment is the structured result of the reasoning-service call, or a
// degraded stand-in when the call or its parsing failed. The advisory
// fields are surfaced for audit but ignored by evaluation logic.
type Assessment struct {
	Analysis                 string          `json:"analysis"`
	FraudLikelihood          FraudLikelihood `json:"fraud_likelihood"`
	RecommendedActions       []string        `json:"recommended_actions"`
	EstimatedResolutionTime  string          `json:"estimated_resolution_time,omitempty"`
	RegulatoryConsiderations string          `json:"regulatory_considerations,omitempty"`
}

// Dispute is created once per successful evaluation and never mutated.
type Dispute struct {
	DisputeID               string        `json:"dispute_id"`
	TransactionID           string        `json:"transaction_id"`
	CustomerID              string        `json:"customer_id"`
	Reason                  string        `json:"reason"`
	Description             string        `json:"description"`
	ContactPhone            string        `json:"contact_phone,omitempty"`
	ContactEmail            string        `json:"contact_email,omitempty"`
	Status                  DisputeStatus `json:"status"`
	CreatedAt               DateTime      `json:"created_at"`
	EstimatedResolutionTime Date          `json:"estimated_resolution_time"`
	ReferenceNumber         string        `json:"reference_number"`
	Assessment              Assessment    `json:"assessment"`
}

// DisputeResponse is the customer-facing view of a dispute.
type DisputeResponse struct {
	DisputeID               string        `json:"dispute_id"`
	TransactionID           string        `json:"transaction_id"`
	CustomerID              string        `json:"customer_id"`
	Status                  DisputeStatus `json:"status"`
	CreatedAt               DateTime      `json:"created_at"`
	EstimatedResolutionTime Date          `json:"estimated_resolution_time"`
	NextSteps               []string      `json:"next_steps"`
	ReferenceNumber         string        `json:"reference_number"`
	AIAssessment            string        `json:"ai_assessment"`
}

// Response builds the customer-facing view, substituting holding copy when
// the assessment came back without actions or analysis text.
func (d *Dispute) Response() DisputeResponse {
	nextSteps := d.Assessment.RecommendedActions
	if len(nextSteps) == 0 {
		nextSteps = []string{"Your dispute is being reviewed"}
	}
	analysis := d.Assessment.Analysis
	if analysis == "" {
		analysis = "Analysis in progress"
	}
	return DisputeResponse{
		DisputeID:               d.DisputeID,
		TransactionID:           d.TransactionID,
		CustomerID:              d.CustomerID,
		Status:                  d.Status,
		CreatedAt:               d.CreatedAt,
		EstimatedResolutionTime: d.EstimatedResolutionTime,
		NextSteps:               nextSteps,
		ReferenceNumber:         d.ReferenceNumber,
		AIAssessment:            analysis,
	}
}
