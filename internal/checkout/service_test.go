package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/internal/invoice"
	"github.com/batoolapp/lenses-backend/internal/orders"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/pagination"
)

type stubCustomers struct {
	upserts []string
	err     error
}

func (s *stubCustomers) UpsertFromCheckout(_ context.Context, _, phone, _ string) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserts = append(s.upserts, phone)
	return &models.Customer{ID: uuid.New(), Phone: phone}, nil
}

func (s *stubCustomers) GetByID(context.Context, uuid.UUID) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomers) List(context.Context) ([]models.Customer, error) { return nil, nil }

type stubOrdersRepo struct {
	created *models.Order
	err     error
}

func (s *stubOrdersRepo) WithTx(*gorm.DB) orders.Repository { return s }

func (s *stubOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) FindByCode(context.Context, string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) List(context.Context, pagination.Params, orders.ListFilters) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (s *stubOrdersRepo) UpdateStatus(context.Context, uuid.UUID, enums.OrderStatus) error {
	return nil
}

type stubSettings struct{}

func (stubSettings) Get(context.Context) (*models.SiteSettings, error) {
	return &models.SiteSettings{LogoURL: "https://cdn.example.com/logo.png"}, nil
}

func (stubSettings) Update(_ context.Context, s *models.SiteSettings) (*models.SiteSettings, error) {
	return s, nil
}

type stubStorage struct {
	uploads   []string
	deletes   []string
	uploadErr error
}

// Upload mirrors the object store client: it hands back the stored path,
// not a URL.
func (s *stubStorage) Upload(_ context.Context, objectPath, _ string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, objectPath)
	return objectPath, nil
}

func (s *stubStorage) PublicURL(objectPath string) string {
	return "https://storage.googleapis.com/test-bucket/" + objectPath
}

func (s *stubStorage) Delete(_ context.Context, objectPath string) error {
	s.deletes = append(s.deletes, objectPath)
	return nil
}

type stubGuard struct {
	denied bool
}

func (s *stubGuard) SetNX(context.Context, string, any, time.Duration) (bool, error) {
	return !s.denied, nil
}

func (s *stubGuard) Del(context.Context, ...string) error { return nil }

func (s *stubGuard) SubmitGuardKey(sessionID string) string { return "guard:" + sessionID }

type fixture struct {
	svc       Service
	customers *stubCustomers
	orders    *stubOrdersRepo
	storage   *stubStorage
	guard     *stubGuard
	invoices  *invoice.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		customers: &stubCustomers{},
		orders:    &stubOrdersRepo{},
		storage:   &stubStorage{},
		guard:     &stubGuard{},
		invoices:  invoice.NewStore(),
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(
		f.customers,
		f.orders,
		stubSettings{},
		f.storage,
		f.guard,
		f.invoices,
		nil,
		logg,
		config.CheckoutConfig{
			ReceiptFolder:     "receipts",
			OrderCodePrefix:   "BT",
			MaxReceiptMB:      10,
			SubmitTimeout:     5 * time.Second,
			SubmitGuardExpiry: time.Minute,
		},
		config.StoreConfig{
			EmailDomain:      "batool.app",
			WhatsAppCountry:  "967",
			CurrencyFallback: "ر.س",
		},
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func readyCart(t *testing.T) (*cart.Store, *Workflow) {
	t.Helper()

	store := cart.NewStore()
	store.AddItem(cart.Item{ID: "lens-1", Name: "عدسات رمادية", Price: decimal.RequireFromString("50.00"), Quantity: 2})
	store.AddItem(cart.Item{ID: "lens-2", Name: "عدسات عسلية", Price: decimal.RequireFromString("100.00"), Quantity: 1})

	wf := NewWorkflow()
	advanceToPayment(t, wf)
	require.NoError(t, wf.SetReceipt(&ReceiptFile{
		FileName:    "receipt.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8},
	}))
	return store, wf
}

func TestSubmit_EmptyCartRejectedBeforeBackends(t *testing.T) {
	f := newFixture(t)
	store := cart.NewStore()
	wf := NewWorkflow()

	_, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Empty(t, f.customers.upserts)
	assert.Empty(t, f.storage.uploads)
	assert.Nil(t, f.orders.created)
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	store, wf := readyCart(t)

	result, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.NoError(t, err)

	order := result.Order
	require.NotNil(t, order)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("200.00")))
	assert.Regexp(t, `^BT-\d{6}$`, order.OrderCode)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "صنعاء, حي السبعين", order.CustomerAddress)
	assert.Equal(t, []string{"701234567"}, f.customers.upserts)

	// the order stores the resolved public URL, never the bare object path
	require.Len(t, f.storage.uploads, 1)
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/"+f.storage.uploads[0], order.PaymentReceiptURL)

	// cart cleared, invoice snapshot survives it
	assert.Empty(t, store.Items())
	snap := f.invoices.Get("s1")
	require.NotNil(t, snap)
	assert.Equal(t, order.OrderCode, snap.OrderCode)
	assert.Len(t, snap.Lines, 2)

	assert.Equal(t, StateSucceeded, wf.State())
}

func TestSubmit_UploadFailureLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	f.storage.uploadErr = errors.New("bucket unavailable")
	store, wf := readyCart(t)

	_, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.Error(t, err)

	assert.Nil(t, f.orders.created)
	assert.Len(t, store.Items(), 2)
	assert.Equal(t, StatePayment, wf.State())
	assert.Nil(t, f.invoices.Get("s1"))
}

func TestSubmit_OrderInsertFailureDeletesReceipt(t *testing.T) {
	f := newFixture(t)
	f.orders.err = errors.New("insert failed")
	store, wf := readyCart(t)

	_, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.Error(t, err)

	require.Len(t, f.storage.uploads, 1)
	assert.Equal(t, f.storage.uploads, f.storage.deletes)
	assert.Len(t, store.Items(), 2)
	assert.Equal(t, StatePayment, wf.State())
}

func TestSubmit_GuardDeniedConflicts(t *testing.T) {
	f := newFixture(t)
	f.guard.denied = true
	store, wf := readyCart(t)

	_, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Empty(t, f.customers.upserts)
	assert.Len(t, store.Items(), 2)
}

func TestSubmit_ReceiptPathUsesConfiguredFolder(t *testing.T) {
	f := newFixture(t)
	store, wf := readyCart(t)

	_, err := f.svc.Submit(context.Background(), "s1", store, wf, Form{})
	require.NoError(t, err)

	require.Len(t, f.storage.uploads, 1)
	assert.Regexp(t, `^receipts/\d+-[a-z0-9]{6}\.jpg$`, f.storage.uploads[0])
}
