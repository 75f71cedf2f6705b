package store_test

import (
	"context"
	"testing"
	"time"

	"bookcourier/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateTransactionIDRejected(t *testing.T) {
	_, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	first := &models.Payment{ID: uuid.New().String(), TransactionID: "pi_dup", OrderID: "o1", Amount: 10, Currency: "usd", CustomerEmail: "r@example.com", PaidAt: time.Now()}
	_, err := bunDB.NewInsert().Model(first).Exec(ctx)
	assert.NoError(t, err)

	second := &models.Payment{ID: uuid.New().String(), TransactionID: "pi_dup", OrderID: "o2", Amount: 10, Currency: "usd", CustomerEmail: "r@example.com", PaidAt: time.Now()}
	_, err = bunDB.NewInsert().Model(second).Exec(ctx)
	assert.Error(t, err)
}

func TestPaymentsByCustomerNewestFirst(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	old := &models.Payment{ID: uuid.New().String(), TransactionID: "pi_old", OrderID: "o1", Amount: 10, Currency: "usd", CustomerEmail: "r@example.com", PaidAt: time.Now().Add(-time.Hour)}
	recent := &models.Payment{ID: uuid.New().String(), TransactionID: "pi_new", OrderID: "o2", Amount: 20, Currency: "usd", CustomerEmail: "r@example.com", PaidAt: time.Now()}
	other := &models.Payment{ID: uuid.New().String(), TransactionID: "pi_other", OrderID: "o3", Amount: 5, Currency: "usd", CustomerEmail: "x@example.com", PaidAt: time.Now()}
	for _, p := range []*models.Payment{old, recent, other} {
		_, err := bunDB.NewInsert().Model(p).Exec(ctx)
		assert.NoError(t, err)
	}

	payments, err := st.Payments.ByCustomer(ctx, "r@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(payments))
	assert.Equal(t, "pi_new", payments[0].TransactionID)
	assert.Equal(t, "pi_old", payments[1].TransactionID)
}
