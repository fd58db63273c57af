package alerts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/kafka"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// Store is the persistence surface the evaluator needs
type Store interface {
	GetActiveAlertsByUser(userID int) ([]*models.Alert, error)
	CreateAlertTrigger(t *models.AlertTrigger) error
}

// QuoteSource provides live prices for a set of coin ids
type QuoteSource interface {
	SimplePrices(ctx context.Context, ids []string, vsCurrency string) (map[string]models.Quote, error)
}

// TriggerPublisher publishes trigger events. May be nil.
type TriggerPublisher interface {
	PublishAlertTriggered(ctx context.Context, alert *models.Alert, price decimal.Decimal) error
}

// Triggered pairs an alert with the price that satisfied it
type Triggered struct {
	Alert *models.Alert   `json:"alert"`
	Price decimal.Decimal `json:"price"`
}

// Evaluator runs one evaluation pass over a user's active alerts. Alerts
// are not deactivated on trigger; an alert whose target stays crossed
// triggers again on every pass until the owner toggles or deletes it.
type Evaluator struct {
	store    Store
	quotes   QuoteSource
	producer TriggerPublisher
	log      zerolog.Logger
}

// NewEvaluator creates an evaluator. producer may be nil.
func NewEvaluator(store Store, quotes QuoteSource, producer *kafka.Producer, log zerolog.Logger) *Evaluator {
	e := &Evaluator{
		store:  store,
		quotes: quotes,
		log:    log,
	}
	if producer != nil {
		e.producer = producer
	}
	return e
}

// CheckUser evaluates the user's active alerts against live prices,
// records a trigger row for each hit and publishes trigger events.
// Coins without a live quote are skipped.
func (e *Evaluator) CheckUser(ctx context.Context, userID int, vsCurrency string) ([]Triggered, error) {
	active, err := e.store.GetActiveAlertsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return []Triggered{}, nil
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(active))
	for _, a := range active {
		if !seen[a.CoinID] {
			seen[a.CoinID] = true
			ids = append(ids, a.CoinID)
		}
	}

	quotes, err := e.quotes.SimplePrices(ctx, ids, vsCurrency)
	if err != nil {
		return nil, err
	}

	triggered := make([]Triggered, 0)
	for _, a := range active {
		quote, ok := quotes[a.CoinID]
		if !ok {
			continue
		}
		if !Evaluate(a, quote.Price) {
			continue
		}

		trigger := &models.AlertTrigger{
			AlertID: a.ID,
			CoinID:  a.CoinID,
			Price:   quote.Price,
		}
		if err := e.store.CreateAlertTrigger(trigger); err != nil {
			e.log.Warn().Err(err).Int("alert_id", a.ID).Msg("failed to record alert trigger")
		}

		if e.producer != nil {
			if err := e.producer.PublishAlertTriggered(ctx, a, quote.Price); err != nil {
				e.log.Warn().Err(err).Int("alert_id", a.ID).Msg("failed to publish alert trigger event")
			}
		}

		triggered = append(triggered, Triggered{Alert: a, Price: quote.Price})
	}

	return triggered, nil
}
