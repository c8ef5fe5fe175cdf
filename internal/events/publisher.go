package events

import (
	"context"
	"encoding/json"
	"time"

	"dispute-resolution-backend/internal/models"

	"github.com/segmentio/kafka-go"
)

// DisputeEvent is published when a dispute is created, keyed by customer so
// one customer's disputes stay ordered on a single partition.
type DisputeEvent struct {
	DisputeID       string `json:"dispute_id"`
	TransactionID   string `json:"transaction_id"`
	CustomerID      string `json:"customer_id"`
	Status          string `json:"status"`
	ReferenceNumber string `json:"reference_number"`
	FraudLikelihood string `json:"fraud_likelihood"`
	CreatedAt       string `json:"created_at"`
}

type DisputePublisher interface {
	PublishDisputeCreated(ctx context.Context, dispute *models.Dispute) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) PublishDisputeCreated(ctx context.Context, dispute *models.Dispute) error {
	event := DisputeEvent{
		DisputeID:       dispute.DisputeID,
		TransactionID:   dispute.TransactionID,
		CustomerID:      dispute.CustomerID,
		Status:          string(dispute.Status),
		ReferenceNumber: dispute.ReferenceNumber,
		FraudLikelihood: string(dispute.Assessment.FraudLikelihood),
		CreatedAt:       dispute.CreatedAt.Format(models.DateTimeLayout),
	}

	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CustomerID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
