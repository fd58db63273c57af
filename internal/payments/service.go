// Package payments implements the gateway top-up and withdrawal flow.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/kafka"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// OrderStore is the persistence surface the service needs
type OrderStore interface {
	CreateOrder(o *models.PaymentOrder) error
	GetOrder(userID int, orderID string) (*models.PaymentOrder, error)
	MarkOrderPaid(userID int, orderID string) error
	CreditWallet(userID int, amount decimal.Decimal) (*models.Wallet, error)
	DebitWallet(userID int, amount decimal.Decimal) (*models.Wallet, error)
	GetWallet(userID int) (*models.Wallet, error)
}

// EventPublisher publishes wallet mutation events. May be nil.
type EventPublisher interface {
	PublishWalletCredited(ctx context.Context, userID int, amount decimal.Decimal, wallet *models.Wallet, orderID string) error
	PublishWalletDebited(ctx context.Context, userID int, amount decimal.Decimal, wallet *models.Wallet) error
}

// Service creates gateway orders, verifies payment signatures and applies
// the resulting wallet mutations.
type Service struct {
	store     OrderStore
	producer  EventPublisher
	keyID     string
	keySecret string
	log       zerolog.Logger
}

// New creates a payments service. producer may be nil.
func New(store OrderStore, producer *kafka.Producer, keyID, keySecret string, log zerolog.Logger) *Service {
	s := &Service{
		store:     store,
		keyID:     keyID,
		keySecret: keySecret,
		log:       log,
	}
	if producer != nil {
		s.producer = producer
	}
	return s
}

// KeyID returns the public gateway key handed to the browser client
func (s *Service) KeyID() string {
	return s.keyID
}

// CreateOrder starts a top-up: the amount is converted to minor units and
// a gateway-shaped order is persisted in status "created".
func (s *Service) CreateOrder(userID int, amount decimal.Decimal, currency string) (*models.PaymentOrder, error) {
	if amount.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("amount must be at least 1: %w", models.ErrValidation)
	}
	if currency == "" {
		currency = "INR"
	}
	if currency != "INR" && currency != "USD" {
		return nil, fmt.Errorf("currency must be INR or USD: %w", models.ErrValidation)
	}

	order := &models.PaymentOrder{
		OrderID:  "order_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:   userID,
		Amount:   amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency: currency,
		Receipt:  fmt.Sprintf("receipt_%d_%d", userID, time.Now().UnixMilli()),
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyAndCredit confirms a top-up. The caller-supplied signature must be
// the HMAC-SHA256 of "orderId|paymentId" under the gateway secret; on a
// match the order is consumed and the wallet credited. The credit is not
// reachable any other way.
func (s *Service) VerifyAndCredit(ctx context.Context, userID int, orderID, paymentID, signature string, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("amount must be at least 1: %w", models.ErrValidation)
	}

	if _, err := s.store.GetOrder(userID, orderID); err != nil {
		return nil, err
	}

	if !s.signatureValid(orderID, paymentID, signature) {
		return nil, fmt.Errorf("invalid payment signature: %w", models.ErrValidation)
	}

	// Consuming the order before crediting keeps verification single-use.
	if err := s.store.MarkOrderPaid(userID, orderID); err != nil {
		return nil, err
	}

	wallet, err := s.store.CreditWallet(userID, amount)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		if err := s.producer.PublishWalletCredited(ctx, userID, amount, wallet, orderID); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to publish wallet credit event")
		}
	}

	return wallet, nil
}

// Withdraw debits the wallet. An amount above the balance is rejected
// without mutating anything.
func (s *Service) Withdraw(ctx context.Context, userID int, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("amount must be at least 1: %w", models.ErrValidation)
	}

	wallet, err := s.store.DebitWallet(userID, amount)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		if err := s.producer.PublishWalletDebited(ctx, userID, amount, wallet); err != nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to publish wallet debit event")
		}
	}

	return wallet, nil
}

func (s *Service) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
