package orders

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"laundry-booking/internal/models"
	"laundry-booking/internal/pricing"
	"laundry-booking/pkg/storage"
	"laundry-booking/pkg/utils"

	"github.com/google/uuid"
)

// ProfileReader is the slice of the profile store the order service
// needs: loading the customer's profile to pre-fill the booking and
// resolve the delivery fee. The users repository satisfies it.
type ProfileReader interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// Notifier is poked after every successful order write so live views
// can re-query and push fresh snapshots. The live feed satisfies it.
type Notifier interface {
	Notify()
}

// PhotoUpload is one file from the multipart photo form.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// MaxPhotosPerOrder caps photo attachments per booking.
const MaxPhotosPerOrder = 5

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error)
	GetOrderDetails(ctx context.Context, orderID, userID, role string) (*models.Order, error)
	TrackByCode(ctx context.Context, code string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, orderID, userID string, req models.UpdateOrderRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, userID, role string) error
	AttachPhotos(ctx context.Context, orderID, userID, role string, uploads []PhotoUpload) (*models.Order, error)

	CreateWalkInOrder(ctx context.Context, req models.WalkInOrderRequest) (*models.Order, error)
	ListAllOrders(ctx context.Context, status string) ([]*models.Order, error)
	ApproveOrder(ctx context.Context, orderID string) error
	RejectOrder(ctx context.Context, orderID string) error
	CompleteOrder(ctx context.Context, orderID string) error
	AdminUpdateOrder(ctx context.Context, orderID string, req models.AdminUpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	Stats(ctx context.Context) (models.Stats, error)
}

// Service implements the order lifecycle logic.
type Service struct {
	repo     RepositoryInterface
	profiles ProfileReader
	uploader storage.Uploader
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new order service. notifier may be nil when no
// live feed is attached (tests).
func NewService(repo RepositoryInterface, profiles ProfileReader, uploader storage.Uploader, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		uploader: uploader,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) notify() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

// CreateOrder composes a booking from the customer's profile and the
// form input, prices it, and persists it as pending.
func (s *Service) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error) {
	// 1. The profile must exist and carry an address; creation is
	// refused before anything is written otherwise.
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder.FindProfile: %w", err)
	}
	if !profile.Address.Complete() {
		return nil, models.ErrProfileIncomplete
	}

	svc, ok := pricing.LookupService(req.ServiceType)
	if !ok {
		return nil, models.ErrUnknownServiceType
	}
	if !pricing.ValidPickupDate(req.PickupDate, s.now()) {
		return nil, models.ErrInvalidPickupDate
	}

	// 2. Deterministic pricing from the catalog and the fee table.
	servicePrice := svc.UnitPrice * req.LoadCount
	deliveryFee := pricing.ResolveDeliveryFee(profile.Address.Area())
	totalPrice := servicePrice + deliveryFee

	code, err := utils.GenerateTrackingCode()
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder.TrackingCode: %w", err)
	}

	order := &models.Order{
		TrackingCode:   code,
		UserID:         userID,
		UserName:       profile.FullName(),
		UserEmail:      profile.Email,
		UserContact:    profile.Contact,
		UserAddress:    profile.Address.Full(),
		Address:        profile.Address,
		ServiceType:    svc.ID,
		ServiceName:    svc.Name,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
		LoadCount:      req.LoadCount,
		Instructions:   req.Instructions,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: buildPaymentDetails(req, s.now()),
		ServicePrice:   servicePrice,
		DeliveryFee:    deliveryFee,
		TotalPrice:     totalPrice,
		Photos:         []string{},
		Status:         models.StatusPending,
		CreatedAt:      s.now(),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	s.notify()
	return created, nil
}

// buildPaymentDetails captures non-cash payment info; cash orders
// carry none.
func buildPaymentDetails(req models.CreateOrderRequest, now time.Time) *models.PaymentDetails {
	switch req.PaymentMethod {
	case "gcash":
		return &models.PaymentDetails{
			Method:      "gcash",
			Status:      "pending",
			Reference:   fmt.Sprintf("GCASH-%d", now.UnixMilli()),
			GcashNumber: req.GcashNumber,
		}
	case "card":
		last4 := req.CardNumber
		if len(last4) > 4 {
			last4 = last4[len(last4)-4:]
		}
		return &models.PaymentDetails{
			Method:     "card",
			Status:     "pending",
			CardLast4:  last4,
			CardExpiry: req.CardExpiry,
		}
	default:
		return nil
	}
}

// GetOrderDetails retrieves a single order. Customers only see their
// own; admins see any. Non-owners get NotFound to avoid leaking.
func (s *Service) GetOrderDetails(ctx context.Context, orderID, userID, role string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetOrderDetails: %w", err)
	}
	if role != models.RoleAdmin && order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// TrackByCode is the public tracking lookup.
func (s *Service) TrackByCode(ctx context.Context, code string) (*models.Order, error) {
	order, err := s.repo.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service.TrackByCode: %w", err)
	}
	return order, nil
}

// ListUserOrders retrieves all orders owned by a user, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ListUserOrders: %w", err)
	}
	return orders, nil
}

// UpdateOrder applies a customer edit. Permitted only by the owner and
// only while the order is still pending; the guard runs before any
// write is issued.
func (s *Service) UpdateOrder(ctx context.Context, orderID, userID string, req models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateOrder: %w", err)
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	if order.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot edit a %s order", models.ErrInvalidStateTransition, order.Status)
	}

	ch := OrderChanges{
		PickupTime:    req.PickupTime,
		Instructions:  req.Instructions,
		PaymentMethod: req.PaymentMethod,
	}

	if req.PickupDate != nil {
		if !pricing.ValidPickupDate(*req.PickupDate, s.now()) {
			return nil, models.ErrInvalidPickupDate
		}
		ch.PickupDate = req.PickupDate
	}

	// Repricing: service type or load count changes recompute the
	// whole breakdown against the stored delivery fee.
	svcID := order.ServiceType
	if req.ServiceType != nil {
		svcID = *req.ServiceType
	}
	loadCount := order.LoadCount
	if req.LoadCount != nil {
		loadCount = *req.LoadCount
	}
	if svcID != order.ServiceType || loadCount != order.LoadCount {
		svc, ok := pricing.LookupService(svcID)
		if !ok {
			return nil, models.ErrUnknownServiceType
		}
		servicePrice := svc.UnitPrice * loadCount
		totalPrice := servicePrice + order.DeliveryFee
		ch.ServiceType = &svc.ID
		ch.ServiceName = &svc.Name
		ch.LoadCount = &loadCount
		ch.ServicePrice = &servicePrice
		ch.TotalPrice = &totalPrice
	}

	if req.PaymentMethod != nil && *req.PaymentMethod == "cash" {
		ch.ClearPayment = true
	}

	updated, err := s.repo.Update(ctx, orderID, ch)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateOrder: %w", err)
	}

	s.notify()
	return updated, nil
}

// CancelOrder cancels a booking. Customers may cancel their own
// pending orders; admins may cancel pending or approved orders.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID, role string) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service.CancelOrder: %w", err)
	}

	if role != models.RoleAdmin {
		if order.UserID != userID {
			return models.ErrNotFound
		}
		if order.Status != models.StatusPending {
			return fmt.Errorf("%w: cannot cancel a %s order", models.ErrInvalidStateTransition, order.Status)
		}
	} else if !order.Status.CanTransitionTo(models.StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel a %s order", models.ErrInvalidStateTransition, order.Status)
	}

	cancelledAt := s.now()
	if err := s.repo.UpdateStatus(ctx, orderID, models.StatusCancelled, &cancelledAt); err != nil {
		return fmt.Errorf("service.CancelOrder: %w", err)
	}

	s.notify()
	return nil
}

// AttachPhotos uploads booking photos to the blob store and patches
// the order with the resulting URLs. A failed upload leaves the order
// as created, without photos; the booking itself is never rolled back.
func (s *Service) AttachPhotos(ctx context.Context, orderID, userID, role string, uploads []PhotoUpload) (*models.Order, error) {
	order, err := s.GetOrderDetails(ctx, orderID, userID, role)
	if err != nil {
		return nil, err
	}
	if len(order.Photos)+len(uploads) > MaxPhotosPerOrder {
		return nil, fmt.Errorf("%w: at most %d photos per order", models.ErrForbidden, MaxPhotosPerOrder)
	}

	urls := append([]string{}, order.Photos...)
	for i, up := range uploads {
		key := fmt.Sprintf("orders/%s/photos/%d_%d_%s%s",
			order.ID, s.now().UnixMilli(), i, uuid.NewString(), path.Ext(up.Filename))
		url, err := s.uploader.Upload(ctx, key, up.Body, up.ContentType)
		if err != nil {
			// Availability over atomicity: keep whatever made it up,
			// keep the order, report the failure.
			log.Printf("photo upload failed for order %s: %v", order.ID, err)
			if len(urls) > len(order.Photos) {
				if patchErr := s.repo.SetPhotos(ctx, orderID, urls); patchErr != nil {
					log.Printf("failed to patch partial photos for order %s: %v", order.ID, patchErr)
				}
			}
			return nil, fmt.Errorf("service.AttachPhotos: %w", err)
		}
		urls = append(urls, url)
	}

	if err := s.repo.SetPhotos(ctx, orderID, urls); err != nil {
		return nil, fmt.Errorf("service.AttachPhotos: %w", err)
	}

	order.Photos = urls
	s.notify()
	return order, nil
}

// --- Admin Service Methods ---

// CreateWalkInOrder records a booking made in person at the shop. The
// order is owned by the admin sentinel rather than a customer identity
// and may start out already approved.
func (s *Service) CreateWalkInOrder(ctx context.Context, req models.WalkInOrderRequest) (*models.Order, error) {
	svc, ok := pricing.LookupService(req.ServiceType)
	if !ok {
		return nil, models.ErrUnknownServiceType
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.OrderStatus(req.Status)
	}

	code, err := utils.GenerateTrackingCode()
	if err != nil {
		return nil, fmt.Errorf("service.CreateWalkInOrder.TrackingCode: %w", err)
	}

	servicePrice := svc.UnitPrice * req.ItemsCount
	deliveryFee := pricing.ResolveDeliveryFee(req.Address)
	order := &models.Order{
		TrackingCode:  code,
		UserID:        models.AdminUserID,
		UserName:      req.Name,
		UserEmail:     req.Email,
		UserContact:   req.Contact,
		UserAddress:   req.Address,
		ServiceType:   svc.ID,
		ServiceName:   svc.Name,
		PickupDate:    req.PickupDate,
		PickupTime:    req.PickupTime,
		LoadCount:     req.ItemsCount,
		Kilo:          req.Kilo,
		Instructions:  req.Instructions,
		PaymentMethod: "cash",
		ServicePrice:  servicePrice,
		DeliveryFee:   deliveryFee,
		TotalPrice:    servicePrice + deliveryFee,
		Photos:        []string{},
		Status:        status,
		CreatedAt:     s.now(),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("service.CreateWalkInOrder: %w", err)
	}

	s.notify()
	return created, nil
}

// ListAllOrders lists every order, optionally filtered by status.
func (s *Service) ListAllOrders(ctx context.Context, status string) ([]*models.Order, error) {
	if status == "" {
		return s.repo.ListAll(ctx)
	}
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidStateTransition, status)
	}
	return s.repo.ListByStatus(ctx, st)
}

// transition performs one admin lifecycle move with the state-machine
// guard checked before the write.
func (s *Service) transition(ctx context.Context, orderID string, to models.OrderStatus) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service.Transition: %w", err)
	}
	if !order.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidStateTransition, order.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, to, nil); err != nil {
		return fmt.Errorf("service.Transition: %w", err)
	}

	s.notify()
	return nil
}

// ApproveOrder moves a pending order to approved.
func (s *Service) ApproveOrder(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, models.StatusApproved)
}

// RejectOrder moves a pending order to rejected.
func (s *Service) RejectOrder(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, models.StatusRejected)
}

// CompleteOrder moves an approved order to completed.
func (s *Service) CompleteOrder(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, models.StatusCompleted)
}

// AdminUpdateOrder edits non-status fields on any order.
func (s *Service) AdminUpdateOrder(ctx context.Context, orderID string, req models.AdminUpdateOrderRequest) (*models.Order, error) {
	ch := OrderChanges{
		UserName:     req.Name,
		UserContact:  req.Contact,
		UserEmail:    req.Email,
		Kilo:         req.Kilo,
		LoadCount:    req.ItemsCount,
		Instructions: req.Instructions,
	}
	if req.ServiceType != nil {
		svc, ok := pricing.LookupService(*req.ServiceType)
		if !ok {
			return nil, models.ErrUnknownServiceType
		}
		ch.ServiceType = &svc.ID
		ch.ServiceName = &svc.Name
	}

	order, err := s.repo.Update(ctx, orderID, ch)
	if err != nil {
		return nil, fmt.Errorf("service.AdminUpdateOrder: %w", err)
	}

	s.notify()
	return order, nil
}

// DeleteOrder permanently removes an order. Only already-cancelled
// orders can be removed (cancel-then-remove).
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service.DeleteOrder: %w", err)
	}
	if order.Status != models.StatusCancelled {
		return fmt.Errorf("%w: only cancelled orders can be removed", models.ErrInvalidStateTransition)
	}

	if err := s.repo.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("service.DeleteOrder: %w", err)
	}

	s.notify()
	return nil
}

// Stats recomputes the dashboard aggregate from the full order set.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("service.Stats: %w", err)
	}
	return ComputeStats(orders), nil
}

// ComputeStats derives the admin aggregate from one order snapshot.
// Revenue is the weight-based estimate (kilo x flat rate), not a sum
// of totalPrice; the two intentionally diverge.
func ComputeStats(orders []*models.Order) models.Stats {
	var st models.Stats
	for _, o := range orders {
		st.TotalOrders++
		switch o.Status {
		case models.StatusPending:
			st.PendingOrders++
		case models.StatusCompleted:
			st.CompletedOrders++
		}
		st.Revenue += o.Kilo * pricing.RevenuePerKilo
	}
	return st
}
