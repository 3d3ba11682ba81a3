package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/cart"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/config"
	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/metrics"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/slots"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	IncreaseQuantity(ctx context.Context, customerID uuid.UUID, productID int64, date time.Time) (*models.Cart, error)
	DecreaseQuantity(ctx context.Context, customerID uuid.UUID, productID int64) (*models.Cart, error)
	RemoveItem(ctx context.Context, customerID uuid.UUID, productID int64) (*models.Cart, error)
}

// CartProvider returns the live Store of a customer's cart.
type CartProvider interface {
	Cart(ctx context.Context, customerID uuid.UUID) (*cart.Store, error)
}

// SlotFetcher queries bookable slots for a product.
type SlotFetcher interface {
	Fetch(ctx context.Context, q models.SlotQuery) (*models.SlotQueryResult, error)
}

type Option func(*cartService)

// WithClock replaces the clock that supplies the default reference date.
func WithClock(now func() time.Time) Option {
	return func(s *cartService) {
		s.now = now
	}
}

type cartService struct {
	carts              CartProvider
	fetcher            SlotFetcher
	inflight           *inflightRegistry
	maxConflictRetries int
	now                func() time.Time
}

func NewCartService(carts CartProvider, fetcher SlotFetcher, cfg config.Cart, opts ...Option) CartService {
	s := &cartService{
		carts:              carts,
		fetcher:            fetcher,
		inflight:           newInflightRegistry(),
		maxConflictRetries: max(cfg.MaxConflictRetries, 0),
		now:                time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {

	store, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return view(customerID, store), nil
}

// AddItem puts a new product in the cart with quantity 1 and one reserved
// slot per session. A product already in the cart is reported and left alone.
func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (result *models.Cart, err error) {

	done := metrics.TrackWorkflow("add_item")
	defer func() { done(err) }()

	logger := middleware.LoggerFromContext(ctx).With(slog.Int64("productId", req.ProductID))

	if req.SessionsPerUnit <= 0 {
		logger.Warn("Rejected line item without sessions", slog.Int("sessionsPerUnit", req.SessionsPerUnit))
		return nil, appErrors.InvalidItemError("Sessions per unit must be a positive integer")
	}

	date, err := s.referenceDate(req.Date)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, customerID, req.ProductID)
	if err != nil {
		return nil, err
	}
	defer release()

	store, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if store.Has(req.ProductID) {
		logger.Info("Product already in cart")
		return nil, appErrors.DuplicateEntryError("Product is already in the cart")
	}

	item := models.CartLineItem{
		ProductID:       req.ProductID,
		Name:            req.Name,
		Description:     req.Description,
		DurationLabel:   req.DurationLabel,
		UnitPrice:       req.UnitPrice,
		SessionsPerUnit: req.SessionsPerUnit,
		Quantity:        1,
	}

	err = s.allocate(ctx, store, req.ProductID, date, req.SessionsPerUnit, func(allocated []time.Time) error {
		item.Slots = models.ReservedMarkers(allocated)

		added, err := store.AddItem(ctx, item)
		if err == nil && !added {
			return appErrors.DuplicateEntryError("Product is already in the cart")
		}

		return err
	})
	if err != nil {
		return nil, s.failure(logger, "Failed to add item", err)
	}

	logger.Info("Item added to cart", slog.Int("slots", req.SessionsPerUnit))

	return view(customerID, store), nil
}

// IncreaseQuantity adds one unit, fetching only the slots the new quantity
// is missing. Existing slots are kept as they are.
func (s *cartService) IncreaseQuantity(ctx context.Context, customerID uuid.UUID, productID int64, date time.Time) (result *models.Cart, err error) {

	done := metrics.TrackWorkflow("increase_quantity")
	defer func() { done(err) }()

	logger := middleware.LoggerFromContext(ctx).With(slog.Int64("productId", productID))

	if date.IsZero() {
		date = s.now()
	}

	release, err := s.acquire(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	store, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item, ok := store.Get(productID)
	if !ok {
		return nil, appErrors.ItemNotFoundError("Item not found in the cart")
	}

	quantity := item.Quantity + 1
	required := slots.Required(item.SessionsPerUnit, quantity)
	deficit := required - len(item.Slots)

	if deficit <= 0 {
		if err := store.SetQuantityAndSlots(ctx, productID, quantity, slots.Reconcile(item.Slots, required)); err != nil {
			return nil, s.failure(logger, "Failed to increase quantity", err)
		}

		logger.Info("Quantity increased without fetching slots", slog.Int("quantity", quantity))

		return view(customerID, store), nil
	}

	err = s.allocate(ctx, store, productID, date, deficit, func(allocated []time.Time) error {
		markers := make([]models.SlotMarker, 0, required)
		markers = append(markers, item.Slots...)
		markers = append(markers, models.ReservedMarkers(allocated)...)

		return store.SetQuantityAndSlots(ctx, productID, quantity, markers)
	})
	if err != nil {
		return nil, s.failure(logger, "Failed to increase quantity", err)
	}

	logger.Info("Quantity increased", slog.Int("quantity", quantity), slog.Int("fetched", deficit))

	return view(customerID, store), nil
}

// DecreaseQuantity removes one unit and drops the most recently added slots.
// Decreasing an item that is not in the cart does nothing.
func (s *cartService) DecreaseQuantity(ctx context.Context, customerID uuid.UUID, productID int64) (result *models.Cart, err error) {

	done := metrics.TrackWorkflow("decrease_quantity")
	defer func() { done(err) }()

	release, err := s.acquire(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	store, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := store.DecrementQuantity(ctx, productID); err != nil {
		logger := middleware.LoggerFromContext(ctx).With(slog.Int64("productId", productID))
		return nil, s.failure(logger, "Failed to decrease quantity", err)
	}

	return view(customerID, store), nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID uuid.UUID, productID int64) (result *models.Cart, err error) {

	done := metrics.TrackWorkflow("remove_item")
	defer func() { done(err) }()

	release, err := s.acquire(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	store, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := store.RemoveItem(ctx, productID); err != nil {
		logger := middleware.LoggerFromContext(ctx).With(slog.Int64("productId", productID))
		return nil, s.failure(logger, "Failed to remove item", err)
	}

	return view(customerID, store), nil
}

// allocate fetches candidates that exclude every slot held by the cart, takes
// the first required of them and hands them to commit. When commit loses a
// race for a slot to another line item the exclusion set is rebuilt and the
// fetch repeated, at most maxConflictRetries times.
func (s *cartService) allocate(ctx context.Context, store *cart.Store, productID int64, date time.Time, required int, commit func([]time.Time) error) error {

	logger := middleware.LoggerFromContext(ctx)

	for attempt := 0; ; attempt++ {
		booked := slots.BookedSlots(store.Items())

		result, err := s.fetcher.Fetch(ctx, models.SlotQuery{
			ProductID: productID,
			Date:      date,
			Exclude:   booked.Times(),
		})
		if err != nil {
			return err
		}

		allocated, err := slots.Allocate(required, result.Timestamps())
		if err != nil {
			return err
		}

		err = commit(allocated)
		if !errors.Is(err, cart.ErrSlotConflict) {
			return err
		}

		if attempt >= s.maxConflictRetries {
			available := 0
			current := slots.BookedSlots(store.Items())
			for _, t := range result.Timestamps() {
				if !current.Contains(t) {
					available++
				}
			}

			logger.Warn("Slot conflict retries exhausted", slog.Int64("productId", productID), slog.Int("attempts", attempt+1))

			// the last attempt could not reserve them all, so the reported
			// availability stays below the requirement
			return appErrors.SlotAllocationError(min(available, required-1), required)
		}

		metrics.SlotConflictRetry()
		logger.Info("Slot taken by another line item, refetching", slog.Int64("productId", productID), slog.Int("attempt", attempt+1))
	}
}

func (s *cartService) acquire(ctx context.Context, customerID uuid.UUID, productID int64) (func(), error) {
	release, err := s.inflight.acquire(ctx, customerID, productID)
	if err != nil {
		return nil, appErrors.InternalError("Request cancelled while waiting for the line item").WithError(err)
	}

	return release, nil
}

// referenceDate parses an optional YYYY-MM-DD date, defaulting to today.
func (s *cartService) referenceDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}

	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, appErrors.InvalidItemError("Date must be formatted as YYYY-MM-DD").WithError(err)
	}

	return date, nil
}

// failure maps Store errors onto the API error taxonomy.
func (s *cartService) failure(logger *slog.Logger, message string, err error) error {

	if errors.Is(err, cart.ErrPersistFailure) {
		logger.Error("Cart change rolled back, persistence failed", slog.String("error", err.Error()))
		return err
	}

	if _, ok := appErrors.IsAppError(err); ok {
		logger.Warn(message, slog.String("error", err.Error()))
		return err
	}

	logger.Error(message, slog.String("error", err.Error()))

	switch {
	case errors.Is(err, cart.ErrInvalidItem):
		return appErrors.InvalidItemError("Invalid line item").WithError(err)
	case errors.Is(err, cart.ErrItemNotFound):
		return appErrors.ItemNotFoundError("Item not found in the cart").WithError(err)
	default:
		return appErrors.InternalError(message).WithError(err)
	}
}

func view(customerID uuid.UUID, store *cart.Store) *models.Cart {
	return models.NewCart(customerID, store.Items(), store.UpdatedAt())
}
