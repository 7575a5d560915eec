// Package events emits committed-transaction notifications to RabbitMQ.
// Publishing is strictly best-effort: the ledger commits first, then
// notifies, and a broker failure is logged rather than surfaced.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/config"
	"github.com/rafi0167/Bank-App/internal/domain"
)

// TransactionCommittedEvent is the wire format of a committed-transaction
// notification. Amounts travel as strings to avoid float rounding in
// consumers.
type TransactionCommittedEvent struct {
	EventID       string `json:"eventId"`
	TransactionID string `json:"transactionId"`
	AccountID     string `json:"accountId"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	NewBalance    string `json:"newBalance"`
	Timestamp     string `json:"timestamp"`
}

// RabbitMQPublisher implements domain.EventPublisher over a topic exchange.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the exchange.
func NewRabbitMQPublisher(cfg config.RabbitMQConfig) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Printf("RabbitMQ publisher initialized: exchange=%s, routing_key=%s", cfg.Exchange, cfg.RoutingKey)

	return &RabbitMQPublisher{
		conn:    conn,
		channel: channel,
		config:  cfg,
	}, nil
}

// PublishTransactionCommitted emits one event for a durably committed
// transaction.
func (p *RabbitMQPublisher) PublishTransactionCommitted(ctx context.Context, tran *domain.Transaction, newBalance decimal.Decimal) error {
	event := TransactionCommittedEvent{
		EventID:       uuid.NewString(),
		TransactionID: tran.ID.String(),
		AccountID:     tran.AccountID.String(),
		Kind:          string(tran.Kind),
		Amount:        tran.Amount.String(),
		NewBalance:    newBalance.String(),
		Timestamp:     tran.Timestamp.Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.config.Exchange,   // exchange
		p.config.RoutingKey, // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (p *RabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("Error closing channel: %v", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ domain.EventPublisher = (*RabbitMQPublisher)(nil)
