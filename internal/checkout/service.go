package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/internal/customers"
	"github.com/batoolapp/lenses-backend/internal/invoice"
	"github.com/batoolapp/lenses-backend/internal/orders"
	"github.com/batoolapp/lenses-backend/internal/settings"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/metrics"
)

// ReceiptStorage is the slice of the object store the checkout flow needs.
// Upload returns the stored object path; PublicURL resolves that path to the
// anonymous-read URL persisted on the order.
type ReceiptStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	PublicURL(objectPath string) string
	Delete(ctx context.Context, objectPath string) error
}

// SubmitGuard serializes submissions per session so a double-click cannot
// create two orders.
type SubmitGuard interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	SubmitGuardKey(sessionID string) string
}

// Result is returned from a successful submission.
type Result struct {
	Order    *models.Order
	Snapshot *invoice.Snapshot
}

// Service runs the checkout submission sequence for a shopper session.
type Service interface {
	Submit(ctx context.Context, sessionID string, store *cart.Store, wf *Workflow, fields Form) (*Result, error)
}

type service struct {
	customers customers.Service
	orders    orders.Repository
	settings  settings.Service
	storage   ReceiptStorage
	guard     SubmitGuard
	invoices  *invoice.Store
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	cfg       config.CheckoutConfig
	store     config.StoreConfig
}

// NewService wires the checkout service. guard and metrics are optional; the
// remaining dependencies are required.
func NewService(
	customersSvc customers.Service,
	ordersRepo orders.Repository,
	settingsSvc settings.Service,
	storage ReceiptStorage,
	guard SubmitGuard,
	invoices *invoice.Store,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	cfg config.CheckoutConfig,
	storeCfg config.StoreConfig,
) (Service, error) {
	if customersSvc == nil {
		return nil, fmt.Errorf("checkout: customers service is required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("checkout: orders repository is required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("checkout: settings service is required")
	}
	if storage == nil {
		return nil, fmt.Errorf("checkout: receipt storage is required")
	}
	if invoices == nil {
		return nil, fmt.Errorf("checkout: invoice store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("checkout: logger is required")
	}
	return &service{
		customers: customersSvc,
		orders:    ordersRepo,
		settings:  settingsSvc,
		storage:   storage,
		guard:     guard,
		invoices:  invoices,
		metrics:   checkoutMetrics,
		logg:      logg,
		cfg:       cfg,
		store:     storeCfg,
	}, nil
}

// Submit runs the full submission sequence: customer upsert, receipt upload,
// order insert. The cart is cleared and an invoice snapshot captured only
// after the order row is durably stored. An empty cart is rejected before any
// backend call is made.
func (s *service) Submit(ctx context.Context, sessionID string, store *cart.Store, wf *Workflow, fields Form) (*Result, error) {
	started := time.Now()

	items := store.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := wf.BeginSubmit(fields); err != nil {
		return nil, err
	}

	if s.guard != nil {
		key := s.guard.SubmitGuardKey(sessionID)
		acquired, err := s.guard.SetNX(ctx, key, started.UnixMilli(), s.cfg.SubmitGuardExpiry)
		if err != nil {
			s.logg.Warn(ctx, "submit guard unavailable, proceeding without it")
		} else if !acquired {
			wf.FinishSubmit(false)
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a submission is already in flight")
		} else {
			defer func() {
				if err := s.guard.Del(ctx, key); err != nil {
					s.logg.Warn(ctx, "releasing submit guard failed")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()

	result, err := s.submit(ctx, sessionID, store, wf, items)
	if err != nil {
		wf.FinishSubmit(false)
		s.observe("failure", started)
		return nil, err
	}

	wf.FinishSubmit(true)
	s.observe("success", started)
	if s.metrics != nil {
		s.metrics.IncSubmitted()
	}
	return result, nil
}

func (s *service) submit(ctx context.Context, sessionID string, store *cart.Store, wf *Workflow, items []cart.Item) (*Result, error) {
	form := wf.Form()

	if _, err := s.customers.UpsertFromCheckout(ctx, form.CustomerName, form.Phone, form.Governorate); err != nil {
		s.failStep("customer_upsert")
		return nil, err
	}

	receiptPath := s.receiptPath(form.Receipt)
	storedPath, err := s.storage.Upload(ctx, receiptPath, receiptContentType(form.Receipt), form.Receipt.Data)
	if err != nil {
		s.failStep("receipt_upload")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading payment receipt")
	}

	order := s.buildOrder(form, items)
	order.PaymentReceiptURL = s.storage.PublicURL(storedPath)

	stored, err := s.createOrder(ctx, order)
	if err != nil {
		s.failStep("order_insert")
		// The receipt is orphaned if it stays; best effort cleanup only.
		if delErr := s.storage.Delete(ctx, receiptPath); delErr != nil {
			s.logg.Error(ctx, "deleting orphaned receipt failed", delErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting order")
	}

	store.Clear()

	// Branding is cosmetic; a failed lookup must not fail the submission.
	branding, err := s.settings.Get(ctx)
	if err != nil {
		s.logg.Warn(ctx, "loading branding for invoice failed")
		branding = nil
	}
	snap := invoice.FromOrder(stored, branding, s.store.CurrencyFallback)
	s.invoices.Put(sessionID, snap)

	ctx = s.logg.WithOrderCode(ctx, stored.OrderCode)
	s.logg.Info(ctx, "order submitted")

	return &Result{Order: stored, Snapshot: snap}, nil
}

// createOrder inserts the order, regenerating the code on the rare collision
// where two submissions share the same millisecond-derived digits.
func (s *service) createOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	for attempt := 0; ; attempt++ {
		stored, err := s.orders.Create(ctx, order)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, orders.ErrDuplicateOrderCode) || attempt >= 2 {
			return nil, err
		}
		order.OrderCode = s.orderCode(time.Now().UTC())
	}
}

func (s *service) buildOrder(form Form, items []cart.Item) *models.Order {
	now := time.Now().UTC()

	order := &models.Order{
		OrderCode:       s.orderCode(now),
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Governorate + ", " + form.City,
		Date:            now,
		Status:          enums.OrderStatusPreparing,
	}

	total := decimal.Zero
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
	}
	order.Total = total
	return order
}

// orderCode derives the short human-readable code from the submission
// timestamp: the configured prefix plus the last six digits of the
// millisecond clock.
func (s *service) orderCode(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return s.cfg.OrderCodePrefix + "-" + ms[len(ms)-6:]
}

// receiptPath names the uploaded receipt object. The millisecond timestamp
// plus a random suffix keeps concurrent uploads from colliding.
func (s *service) receiptPath(receipt *ReceiptFile) string {
	ext := strings.ToLower(path.Ext(receipt.FileName))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d-%s%s", s.cfg.ReceiptFolder, time.Now().UnixMilli(), randSuffix(6), ext)
}

func receiptContentType(receipt *ReceiptFile) string {
	if receipt.ContentType != "" {
		return receipt.ContentType
	}
	if byExt := mime.TypeByExtension(path.Ext(receipt.FileName)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randSuffix(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = suffixAlphabet[0]
			continue
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out)
}

func (s *service) failStep(step string) {
	if s.metrics != nil {
		s.metrics.IncFailed(step)
	}
}

func (s *service) observe(outcome string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDuration(outcome, time.Since(started))
	}
}
