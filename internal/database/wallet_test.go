package database

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

func TestWalletRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("new user starts with zero balance", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		wallet, err := testDB.GetWallet(user.ID)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.IsZero())
		assert.Equal(t, "INR", wallet.Currency)
	})

	t.Run("CreditWallet adds to balance", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		wallet, err := testDB.CreditWallet(user.ID, decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(wallet.Balance))

		wallet, err = testDB.CreditWallet(user.ID, decimal.NewFromFloat(99.50))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(599.50).Equal(wallet.Balance), "balance = %s", wallet.Balance)
	})

	t.Run("DebitWallet subtracts within balance", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		_, err := testDB.CreditWallet(user.ID, decimal.NewFromInt(100))
		require.NoError(t, err)

		wallet, err := testDB.DebitWallet(user.ID, decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(wallet.Balance))
	})

	t.Run("overdraw is rejected and balance untouched", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		_, err := testDB.CreditWallet(user.ID, decimal.NewFromInt(100))
		require.NoError(t, err)

		_, err = testDB.DebitWallet(user.ID, decimal.NewFromInt(150))
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		wallet, err := testDB.GetWallet(user.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(wallet.Balance))
	})

	t.Run("concurrent debits never overdraw", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		_, err := testDB.CreditWallet(user.ID, decimal.NewFromInt(100))
		require.NoError(t, err)

		const workers = 10
		var wg sync.WaitGroup
		results := make(chan error, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := testDB.DebitWallet(user.ID, decimal.NewFromInt(30))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, models.ErrInsufficientFunds)
			}
		}
		assert.Equal(t, 3, succeeded, "only three 30-unit debits fit in 100")

		wallet, err := testDB.GetWallet(user.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(wallet.Balance), "balance = %s", wallet.Balance)
	})

	t.Run("validates amounts", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		_, err := testDB.CreditWallet(user.ID, decimal.Zero)
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = testDB.DebitWallet(user.ID, decimal.NewFromInt(-5))
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestOrdersRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateOrder and GetOrder round-trip", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		order := &models.PaymentOrder{
			OrderID:  "order_abc123",
			UserID:   user.ID,
			Amount:   50000,
			Currency: "INR",
			Receipt:  "receipt_1_1",
		}
		require.NoError(t, testDB.CreateOrder(order))
		assert.Equal(t, models.OrderStatusCreated, order.Status)

		got, err := testDB.GetOrder(user.ID, "order_abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(50000), got.Amount)
		assert.Equal(t, models.OrderStatusCreated, got.Status)
	})

	t.Run("GetOrder scopes to owner", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")
		other := testDB.CreateTestUser(t, "b@example.com")

		order := &models.PaymentOrder{
			OrderID: "order_abc123", UserID: user.ID, Amount: 100, Currency: "INR", Receipt: "r",
		}
		require.NoError(t, testDB.CreateOrder(order))

		_, err := testDB.GetOrder(other.ID, "order_abc123")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("MarkOrderPaid is single-use", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "a@example.com")

		order := &models.PaymentOrder{
			OrderID: "order_abc123", UserID: user.ID, Amount: 100, Currency: "INR", Receipt: "r",
		}
		require.NoError(t, testDB.CreateOrder(order))

		require.NoError(t, testDB.MarkOrderPaid(user.ID, "order_abc123"))

		err := testDB.MarkOrderPaid(user.ID, "order_abc123")
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}
