package orders

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/pagination"
)

type memOrdersRepo struct {
	byID map[uuid.UUID]*models.Order
}

func newMemOrdersRepo() *memOrdersRepo {
	return &memOrdersRepo{byID: map[uuid.UUID]*models.Order{}}
}

func (m *memOrdersRepo) WithTx(*gorm.DB) Repository { return m }

func (m *memOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.byID[order.ID] = order
	return order, nil
}

func (m *memOrdersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memOrdersRepo) FindByCode(_ context.Context, code string) (*models.Order, error) {
	for _, order := range m.byID {
		if order.OrderCode == code {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrdersRepo) List(context.Context, pagination.Params, ListFilters) (*OrderList, error) {
	return &OrderList{}, nil
}

func (m *memOrdersRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	order, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func newTestService(t *testing.T) (Service, *memOrdersRepo) {
	t.Helper()
	repo := newMemOrdersRepo()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, logg, "967")
	require.NoError(t, err)
	return svc, repo
}

func pendingOrder(repo *memOrdersRepo) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		OrderCode:     "BT-123456",
		CustomerName:  "أحمد علي",
		CustomerPhone: "701234567",
		Status:        enums.OrderStatusPreparing,
	}
	repo.byID[order.ID] = order
	return order
}

func TestGetByCode_FindsStoredOrder(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)

	found, err := svc.GetByCode(context.Background(), "BT-123456")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, "BT-123456", found.OrderCode)
}

func TestGetByCode_UnknownCodeNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByCode(context.Background(), "BT-999999")
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDecide_AcceptShipsAndLinksWhatsApp(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)

	result, err := svc.Decide(context.Background(), order.ID, DecisionAccept)
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusShipped, result.Order.Status)
	assert.Equal(t, enums.OrderStatusShipped, repo.byID[order.ID].Status)

	require.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/967701234567?text="))
	parsed, err := url.Parse(result.WhatsAppURL)
	require.NoError(t, err)
	message := parsed.Query().Get("text")
	assert.Contains(t, message, "تم قبول طلبك")
	assert.Contains(t, message, "BT-123456")
	assert.Contains(t, message, "أحمد علي")
}

func TestDecide_RejectCancels(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)

	result, err := svc.Decide(context.Background(), order.ID, DecisionReject)
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusCancelled, result.Order.Status)

	parsed, err := url.Parse(result.WhatsAppURL)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "تم رفض طلبك")
}

func TestDecide_AlreadyDecidedConflicts(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)
	order.Status = enums.OrderStatusShipped

	_, err := svc.Decide(context.Background(), order.ID, DecisionAccept)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestDecide_UnknownDecisionRejected(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)

	_, err := svc.Decide(context.Background(), order.ID, Decision("maybe"))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecide_MissingOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Decide(context.Background(), uuid.New(), DecisionAccept)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestWhatsAppLink_InternationalPhonePassesThrough(t *testing.T) {
	svc, repo := newTestService(t)
	order := pendingOrder(repo)
	order.CustomerPhone = "967701234567"

	result, err := svc.Decide(context.Background(), order.ID, DecisionAccept)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/967701234567?"))
}
