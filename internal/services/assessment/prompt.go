package assessment

import (
	"fmt"

	"dispute-resolution-backend/internal/models"
)

const systemPrompt = `You are an AI assistant specialized in analyzing banking disputes for unauthorized transactions in Australia.
Your role is to analyze transaction details and customer dispute information to:

1. Assess the likelihood that the transaction was fraudulent
2. Recommend appropriate next steps based on Australian banking regulations
3. Provide a clear analysis that helps both the customer and bank staff

Your response should be in JSON format with the following structure:
{
    "analysis": "Detailed analysis of the dispute",
    "fraud_likelihood": "HIGH/MEDIUM/LOW",
    "recommended_actions": ["Action 1", "Action 2", ...],
    "estimated_resolution_time": "X business days",
    "regulatory_considerations": "Relevant Australian banking regulations"
}

Follow these Australian banking guidelines:
- Unauthorized transactions should be reported as soon as possible
- The ePayments Code provides protections for customers
- Banks must investigate and respond to disputes within 21 days for simple cases
- Complex cases may take up to 45 days to resolve
- Customers are generally not liable for unauthorized transactions unless they contributed to the loss

Be factual, precise, and helpful while maintaining privacy and security.`

func buildDisputePrompt(tx models.Transaction, req models.DisputeRequest) string {
	return fmt.Sprintf(`Please analyze this disputed transaction and provide your assessment:

TRANSACTION DETAILS:
- Transaction ID: %s
- Date: %s
- Merchant: %s
- Amount: $%s
- Category: %s
- Transaction Type: %s
- Payment Method: %s
- Location: %s

CUSTOMER DISPUTE:
- Customer ID: %s
- Dispute Reason: %s
- Customer Description: %s

Based on the transaction details and customer's dispute information, please:
1. Analyze whether this transaction appears to be fraudulent
2. Recommend next steps for resolution
3. Provide estimated resolution timeframe
4. Note any relevant Australian banking regulations

Respond in the JSON format specified in your instructions.`,
		tx.TransactionID,
		tx.Date.Format(models.DateTimeLayout),
		tx.Merchant,
		tx.Amount.StringFixed(2),
		tx.Category,
		tx.TransactionType,
		tx.PaymentMethod,
		tx.Location,
		req.CustomerID,
		req.Reason,
		req.Description,
	)
}
