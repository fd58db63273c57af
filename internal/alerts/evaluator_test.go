package alerts

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

type fakeStore struct {
	alerts   []*models.Alert
	triggers []*models.AlertTrigger
}

func (f *fakeStore) GetActiveAlertsByUser(userID int) ([]*models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeStore) CreateAlertTrigger(t *models.AlertTrigger) error {
	f.triggers = append(f.triggers, t)
	return nil
}

type fakeQuotes struct {
	quotes map[string]models.Quote
	err    error
}

func (f *fakeQuotes) SimplePrices(_ context.Context, ids []string, _ string) (map[string]models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func TestEvaluatorCheckUser(t *testing.T) {
	nop := zerolog.Nop()

	t.Run("records and returns triggered alerts", func(t *testing.T) {
		store := &fakeStore{alerts: []*models.Alert{
			{ID: 1, UserID: 7, CoinID: "bitcoin", Condition: models.ConditionAbove, TargetPrice: decimal.NewFromInt(50000), IsActive: true},
			{ID: 2, UserID: 7, CoinID: "ethereum", Condition: models.ConditionBelow, TargetPrice: decimal.NewFromInt(2000), IsActive: true},
		}}
		quotes := &fakeQuotes{quotes: map[string]models.Quote{
			"bitcoin":  {Price: decimal.NewFromInt(51000)},
			"ethereum": {Price: decimal.NewFromInt(2500)},
		}}

		e := NewEvaluator(store, quotes, nil, nop)
		triggered, err := e.CheckUser(context.Background(), 7, "usd")
		require.NoError(t, err)

		require.Len(t, triggered, 1)
		assert.Equal(t, 1, triggered[0].Alert.ID)
		assert.True(t, decimal.NewFromInt(51000).Equal(triggered[0].Price))

		require.Len(t, store.triggers, 1)
		assert.Equal(t, 1, store.triggers[0].AlertID)
		assert.Equal(t, "bitcoin", store.triggers[0].CoinID)
	})

	t.Run("skips coins without a quote", func(t *testing.T) {
		store := &fakeStore{alerts: []*models.Alert{
			{ID: 1, UserID: 7, CoinID: "obscurecoin", Condition: models.ConditionAbove, TargetPrice: decimal.NewFromInt(1), IsActive: true},
		}}
		quotes := &fakeQuotes{quotes: map[string]models.Quote{}}

		e := NewEvaluator(store, quotes, nil, nop)
		triggered, err := e.CheckUser(context.Background(), 7, "usd")
		require.NoError(t, err)

		assert.Empty(t, triggered)
		assert.Empty(t, store.triggers)
	})

	t.Run("propagates quote source failure", func(t *testing.T) {
		store := &fakeStore{alerts: []*models.Alert{
			{ID: 1, UserID: 7, CoinID: "bitcoin", Condition: models.ConditionAbove, TargetPrice: decimal.NewFromInt(1), IsActive: true},
		}}
		quotes := &fakeQuotes{err: models.ErrUpstreamUnavailable}

		e := NewEvaluator(store, quotes, nil, nop)
		_, err := e.CheckUser(context.Background(), 7, "usd")
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("no active alerts fetches nothing", func(t *testing.T) {
		store := &fakeStore{}
		quotes := &fakeQuotes{err: models.ErrUpstreamUnavailable}

		e := NewEvaluator(store, quotes, nil, nop)
		triggered, err := e.CheckUser(context.Background(), 7, "usd")
		require.NoError(t, err)
		assert.Empty(t, triggered)
	})
}
