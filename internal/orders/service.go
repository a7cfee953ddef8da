package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/pagination"
)

// Decision is an admin verdict on a pending order.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DecisionResult carries the updated order plus the ready-to-open WhatsApp
// link notifying the customer in Arabic.
type DecisionResult struct {
	Order       *models.Order
	WhatsAppURL string
}

// Service exposes order reads and the admin accept/reject flow.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByCode(ctx context.Context, orderCode string) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	Decide(ctx context.Context, id uuid.UUID, decision Decision) (*DecisionResult, error)
}

type service struct {
	repo        Repository
	logg        *logger.Logger
	countryCode string
}

// NewService wires the orders service. countryCode is the international
// dialing prefix prepended to stored local phone numbers for WhatsApp links.
func NewService(repo Repository, logg *logger.Logger, countryCode string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("orders: logger is required")
	}
	if countryCode == "" {
		return nil, fmt.Errorf("orders: country code is required")
	}
	return &service{repo: repo, logg: logg, countryCode: countryCode}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding order")
	}
	return order, nil
}

func (s *service) GetByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	order, err := s.repo.FindByCode(ctx, orderCode)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding order by code")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return list, nil
}

// Decide accepts or rejects a pending order. Accepting moves it to shipped,
// rejecting cancels it. Only orders still in the preparing state can be
// decided on.
func (s *service) Decide(ctx context.Context, id uuid.UUID, decision Decision) (*DecisionResult, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != enums.OrderStatusPreparing {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order has already been decided on").
			WithDetails(map[string]string{"status": order.Status.String()})
	}

	var next enums.OrderStatus
	var message string
	switch decision {
	case DecisionAccept:
		next = enums.OrderStatusShipped
		message = fmt.Sprintf(
			"مرحباً %s، تم قبول طلبك رقم #%s وجاري تجهيزه للشحن. شكراً لثقتك بـ عدسات بتول!",
			order.CustomerName, order.OrderCode,
		)
	case DecisionReject:
		next = enums.OrderStatusCancelled
		message = fmt.Sprintf(
			"مرحباً %s، نأسف لإبلاغك بأنه تم رفض طلبك رقم #%s. يرجى التواصل معنا لمزيد من التفاصيل.",
			order.CustomerName, order.OrderCode,
		)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be accept or reject")
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	order.Status = next

	ctx = s.logg.WithOrderCode(ctx, order.OrderCode)
	s.logg.Info(ctx, "order decision recorded: "+string(decision))

	return &DecisionResult{
		Order:       order,
		WhatsAppURL: s.whatsAppLink(order.CustomerPhone, message),
	}, nil
}

// whatsAppLink builds a wa.me deep link for the customer's phone. Local
// numbers get the configured country prefix; already-international numbers
// pass through untouched.
func (s *service) whatsAppLink(phone, message string) string {
	if !strings.HasPrefix(phone, s.countryCode) {
		phone = s.countryCode + phone
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
