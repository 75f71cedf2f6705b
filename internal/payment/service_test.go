package payment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bookcourier/internal/logger"
	"bookcourier/internal/models"
	"bookcourier/internal/payment"
	"bookcourier/internal/qr"
	"bookcourier/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"
)

// Mock implementations
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, order *models.Order, book *models.Book) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, order, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutResponse), args.Error(1)
}

func (m *MockProvider) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

type MockLock struct {
	mock.Mock
}

func (m *MockLock) Acquire(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLock) Release(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPaymentRecorded(p models.Payment) error {
	args := m.Called(p)
	return args.Error(0)
}

func setupStore(t *testing.T) (*store.Store, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	for _, m := range []interface{}{(*models.Order)(nil), (*models.Payment)(nil)} {
		if _, err := bunDB.NewCreateTable().Model(m).Exec(context.Background()); err != nil {
			t.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
	return store.New(bunDB), bunDB
}

func insertPendingOrder(t *testing.T, bunDB *bun.DB) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:              uuid.New().String(),
		CustomerEmail:   "reader@example.com",
		BookAuthorEmail: "author@example.com",
		BookID:          "book-1",
		BookName:        "Learning Go",
		Price:           25.0,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusUnpaid,
		OrderDate:       time.Now(),
	}
	_, err := bunDB.NewInsert().Model(order).Exec(context.Background())
	assert.NoError(t, err)
	return order
}

func TestConfirmPaidSession(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order := insertPendingOrder(t, bunDB)

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_1").Return(&payment.Session{
		ID:            "cs_test_1",
		TransactionID: "pi_test_1",
		OrderID:       order.ID,
		CustomerEmail: "reader@example.com",
		Currency:      "usd",
		AmountTotal:   2500,
		Paid:          true,
	}, nil)

	svc := payment.NewService(mockProvider, st, nil, nil, qr.NewGenerator("test-secret"), &logger.Logger{})

	result, err := svc.Confirm(ctx, "cs_test_1")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusPaid, result.Status)
	assert.NotNil(t, result.Payment)
	assert.Equal(t, "pi_test_1", result.Payment.TransactionID)
	assert.Equal(t, 25.0, result.Payment.Amount)
	assert.NotEmpty(t, result.Payment.DeliveryQR)

	updated, err := st.Orders.ByID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)

	mockProvider.AssertExpectations(t)
}

func TestConfirmIsIdempotent(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order := insertPendingOrder(t, bunDB)

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_2").Return(&payment.Session{
		ID:            "cs_test_2",
		TransactionID: "pi_test_2",
		OrderID:       order.ID,
		Currency:      "usd",
		AmountTotal:   2500,
		Paid:          true,
	}, nil)

	svc := payment.NewService(mockProvider, st, nil, nil, nil, &logger.Logger{})

	first, err := svc.Confirm(ctx, "cs_test_2")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusPaid, first.Status)

	// Same session confirmed again: no second payment row
	second, err := svc.Confirm(ctx, "cs_test_2")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusAlreadyProcessed, second.Status)
	assert.NotNil(t, second.Payment)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)

	count, err := bunDB.NewSelect().Model((*models.Payment)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfirmUnpaidSession(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order := insertPendingOrder(t, bunDB)

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_3").Return(&payment.Session{
		ID:            "cs_test_3",
		TransactionID: "pi_test_3",
		OrderID:       order.ID,
		Currency:      "usd",
		AmountTotal:   2500,
		Paid:          false,
	}, nil)

	svc := payment.NewService(mockProvider, st, nil, nil, nil, &logger.Logger{})

	result, err := svc.Confirm(ctx, "cs_test_3")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusNotPaid, result.Status)
	assert.Nil(t, result.Payment)

	// Nothing was mutated
	updated, err := st.Orders.ByID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, updated.PaymentStatus)

	count, err := bunDB.NewSelect().Model((*models.Payment)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestConfirmWithoutTransactionID(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_4").Return(&payment.Session{
		ID:   "cs_test_4",
		Paid: true,
	}, nil)

	svc := payment.NewService(mockProvider, st, nil, nil, nil, &logger.Logger{})

	result, err := svc.Confirm(context.Background(), "cs_test_4")
	assert.ErrorIs(t, err, payment.ErrNoTransaction)
	assert.Nil(t, result)
}

func TestConfirmLockContention(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order := insertPendingOrder(t, bunDB)

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_5").Return(&payment.Session{
		ID:            "cs_test_5",
		TransactionID: "pi_test_5",
		OrderID:       order.ID,
		Currency:      "usd",
		AmountTotal:   2500,
		Paid:          true,
	}, nil)

	mockLock := new(MockLock)
	mockLock.On("Acquire", mock.Anything, "pi_test_5").Return(false, nil)

	svc := payment.NewService(mockProvider, st, mockLock, nil, nil, &logger.Logger{})

	result, err := svc.Confirm(ctx, "cs_test_5")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusAlreadyProcessed, result.Status)

	// The losing confirmation never touched the order
	updated, err := st.Orders.ByID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, updated.PaymentStatus)

	mockLock.AssertExpectations(t)
	mockLock.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestConfirmPublishesEvent(t *testing.T) {
	st, bunDB := setupStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order := insertPendingOrder(t, bunDB)

	mockProvider := new(MockProvider)
	mockProvider.On("GetSession", mock.Anything, "cs_test_6").Return(&payment.Session{
		ID:            "cs_test_6",
		TransactionID: "pi_test_6",
		OrderID:       order.ID,
		Currency:      "usd",
		AmountTotal:   2500,
		Paid:          true,
	}, nil)

	mockPublisher := new(MockPublisher)
	mockPublisher.On("PublishPaymentRecorded", mock.MatchedBy(func(p models.Payment) bool {
		return p.TransactionID == "pi_test_6" && p.OrderID == order.ID
	})).Return(nil)

	svc := payment.NewService(mockProvider, st, nil, mockPublisher, nil, &logger.Logger{})

	result, err := svc.Confirm(ctx, "cs_test_6")
	assert.NoError(t, err)
	assert.Equal(t, models.ConfirmStatusPaid, result.Status)

	mockPublisher.AssertExpectations(t)
}
