package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// Producer handles publishing portfolio events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishAlertTriggered publishes an alert trigger event
func (p *Producer) PublishAlertTriggered(ctx context.Context, alert *models.Alert, price decimal.Decimal) error {
	event := models.AlertEvent{
		EventType:   "ALERT_TRIGGERED",
		UserID:      alert.UserID,
		AlertID:     alert.ID,
		CoinID:      alert.CoinID,
		Symbol:      alert.Symbol,
		TargetPrice: alert.TargetPrice,
		Condition:   alert.Condition,
		Price:       price,
		Timestamp:   time.Now(),
	}
	return p.publish(ctx, strconv.Itoa(alert.UserID), event)
}

// PublishWalletCredited publishes a verified top-up event
func (p *Producer) PublishWalletCredited(ctx context.Context, userID int, amount decimal.Decimal, wallet *models.Wallet, orderID string) error {
	event := models.WalletEvent{
		EventType: "WALLET_CREDITED",
		UserID:    userID,
		Amount:    amount,
		Balance:   wallet.Balance,
		OrderID:   orderID,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, strconv.Itoa(userID), event)
}

// PublishWalletDebited publishes a withdrawal event
func (p *Producer) PublishWalletDebited(ctx context.Context, userID int, amount decimal.Decimal, wallet *models.Wallet) error {
	event := models.WalletEvent{
		EventType: "WALLET_DEBITED",
		UserID:    userID,
		Amount:    amount,
		Balance:   wallet.Balance,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, strconv.Itoa(userID), event)
}

func (p *Producer) publish(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
