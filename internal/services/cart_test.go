package service_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/cart"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/config"
	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	service "github.com/aaravmahajanofficial/tutoring-cart/internal/services"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	day    = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	nineAM = day.Add(9 * time.Hour)
)

type storeProvider struct {
	store *cart.Store
	err   error
}

func (p storeProvider) Cart(context.Context, uuid.UUID) (*cart.Store, error) {
	return p.store, p.err
}

type failingPersister struct {
	err error
}

func (p failingPersister) Persist(context.Context, []models.CartLineItem) error {
	return p.err
}

// togglePersister fails while failing is set.
type togglePersister struct {
	failing atomic.Bool
}

func (p *togglePersister) Persist(context.Context, []models.CartLineItem) error {
	if p.failing.Load() {
		return errors.New("connection reset")
	}

	return nil
}

// poolFetcher behaves like the availability backend: it offers its pool in
// order, minus whatever the query excludes.
type poolFetcher struct {
	pool []time.Time
}

func (f poolFetcher) Fetch(_ context.Context, q models.SlotQuery) (*models.SlotQueryResult, error) {
	result := &models.SlotQueryResult{SlotDurationMinutes: 60}

	for _, t := range f.pool {
		if slices.ContainsFunc(q.Exclude, t.Equal) {
			continue
		}
		result.Slots = append(result.Slots, models.AvailableSlot{Timestamp: t})
	}

	if len(result.Slots) == 0 {
		return nil, appErrors.SlotFetchError("No bookable slots available")
	}

	return result, nil
}

func hourly(start time.Time, n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}

	return times
}

func slotsResult(times ...time.Time) *models.SlotQueryResult {
	result := &models.SlotQueryResult{SlotDurationMinutes: 60}
	for _, t := range times {
		result.Slots = append(result.Slots, models.AvailableSlot{Timestamp: t, EligibleStaff: []int64{1}})
	}

	return result
}

func lineItem(productID int64, sessionsPerUnit, quantity int, start time.Time) models.CartLineItem {
	return models.CartLineItem{
		ProductID:       productID,
		Name:            "Bundle",
		UnitPrice:       decimal.RequireFromString("25.00"),
		SessionsPerUnit: sessionsPerUnit,
		Quantity:        quantity,
		Slots:           models.ReservedMarkers(hourly(start, sessionsPerUnit*quantity)),
	}
}

func addRequest(productID int64, sessionsPerUnit int) *models.AddItemRequest {
	return &models.AddItemRequest{
		ProductID:       productID,
		Name:            "Algebra bundle",
		UnitPrice:       decimal.RequireFromString("149.90"),
		SessionsPerUnit: sessionsPerUnit,
		Date:            "2025-10-15",
	}
}

func reservedTimes(t *testing.T, item models.CartLineItem) []time.Time {
	t.Helper()

	times := make([]time.Time, 0, len(item.Slots))
	for _, marker := range item.Slots {
		at, ok := marker.Time()
		require.True(t, ok, "unexpected placeholder")
		times = append(times, at)
	}

	return times
}

// assertInvariants checks slot cardinality per item and that no timestamp
// is held twice across the cart.
func assertInvariants(t *testing.T, store *cart.Store) {
	t.Helper()

	seen := map[int64]int64{}
	for _, item := range store.Items() {
		assert.Len(t, item.Slots, item.SessionsPerUnit*item.Quantity, "product %d", item.ProductID)

		for _, marker := range item.Slots {
			at, ok := marker.Time()
			if !ok {
				continue
			}

			if owner, dup := seen[at.UnixMilli()]; dup {
				t.Errorf("slot %s held by products %d and %d", marker, owner, item.ProductID)
			}
			seen[at.UnixMilli()] = item.ProductID
		}
	}
}

func assertCode(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("Success - Reserves One Slot Per Session", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{MaxConflictRetries: 2})

		fetcher.On("Fetch", mock.Anything, mock.MatchedBy(func(q models.SlotQuery) bool {
			return q.ProductID == 42 && q.Date.Equal(day) && len(q.Exclude) == 0
		})).Return(slotsResult(hourly(nineAM, 6)...), nil).Once()

		// Act
		result, err := cartService.AddItem(ctx, customerID, addRequest(42, 5))

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		item := result.Items[0]
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, hourly(nineAM, 5), reservedTimes(t, item))
		assert.Equal(t, "Algebra bundle", item.Name)
		assert.True(t, decimal.RequireFromString("149.90").Equal(result.Total))
		assert.Zero(t, result.UnfilledSlots)
		assertInvariants(t, store)
	})

	t.Run("Success - Defaults Reference Date To Now", func(t *testing.T) {
		// Arrange
		now := time.Date(2025, 11, 2, 14, 30, 0, 0, time.UTC)
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{},
			service.WithClock(func() time.Time { return now }))

		req := addRequest(7, 1)
		req.Date = ""

		fetcher.On("Fetch", mock.Anything, mock.MatchedBy(func(q models.SlotQuery) bool {
			return q.Date.Equal(now)
		})).Return(slotsResult(now.Add(time.Hour)), nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, store.Has(7))
	})

	t.Run("Failure - Already In Cart", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 1, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})
		before := store.Items()

		// Act
		result, err := cartService.AddItem(ctx, customerID, addRequest(42, 3))

		// Assert
		assert.Nil(t, result)
		assertCode(t, err, appErrors.ErrCodeDuplicateEntry)
		assert.Equal(t, before, store.Items())
		fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid Sessions Per Unit", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		for _, spu := range []int{0, -2} {
			// Act
			result, err := cartService.AddItem(ctx, customerID, addRequest(42, spu))

			// Assert
			assert.Nil(t, result)
			appErr := assertCode(t, err, appErrors.ErrCodeInvalidItem)
			assert.Equal(t, 400, appErr.StatusCode)
		}
		assert.Empty(t, store.Items())
	})

	t.Run("Failure - Malformed Reference Date", func(t *testing.T) {
		store := cart.NewStore(nil, nil)
		cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})
		req := addRequest(42, 1)
		req.Date = "15/10/2025"

		_, err := cartService.AddItem(ctx, customerID, req)

		assertCode(t, err, appErrors.ErrCodeInvalidItem)
	})

	t.Run("Failure - Fetch Error Leaves Store Untouched", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.Anything).
			Return(nil, appErrors.SlotFetchError("Failed to fetch available slots")).Once()

		// Act
		result, err := cartService.AddItem(ctx, customerID, addRequest(42, 2))

		// Assert
		assert.Nil(t, result)
		assertCode(t, err, appErrors.ErrCodeSlotFetchFailed)
		assert.Empty(t, store.Items())
	})

	t.Run("Failure - Not Enough Slots", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(hourly(nineAM, 2)...), nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, addRequest(42, 5))

		// Assert
		assertCode(t, err, appErrors.ErrCodeSlotAllocationFailed)

		var shortage *appErrors.SlotShortage
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, appErrors.SlotShortage{Available: 2, Required: 5}, *shortage)
		assert.Empty(t, store.Items())
	})

	t.Run("Failure - Persistence Error Leaves Cart Unchanged", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("connection reset")
		store := cart.NewStore(nil, failingPersister{err: dbErr})
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(nineAM), nil).Once()

		// Act
		result, err := cartService.AddItem(ctx, customerID, addRequest(42, 1))

		// Assert
		assert.Nil(t, result)
		assertCode(t, err, appErrors.ErrCodeDatabaseError)
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, store.Has(42))
	})

	t.Run("Success - Retry After Persistence Error", func(t *testing.T) {
		// Arrange
		persister := &togglePersister{}
		persister.failing.Store(true)
		store := cart.NewStore(nil, persister)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(hourly(nineAM, 2)...), nil).Twice()

		// Act
		_, firstErr := cartService.AddItem(ctx, customerID, addRequest(42, 2))
		persister.failing.Store(false)
		result, err := cartService.AddItem(ctx, customerID, addRequest(42, 2))

		// Assert
		assertCode(t, firstErr, appErrors.ErrCodeDatabaseError)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Items[0].Quantity)
		assertInvariants(t, store)
	})

	t.Run("Failure - Cart Cannot Be Loaded", func(t *testing.T) {
		loadErr := appErrors.DatabaseError("Failed to load cart")
		cartService := service.NewCartService(storeProvider{err: loadErr}, mocks.NewSlotFetcher(t), config.Cart{})

		_, err := cartService.AddItem(ctx, customerID, addRequest(42, 1))

		assert.ErrorIs(t, err, loadErr)
	})
}

func TestAddItemAcrossProducts(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("Success - Held Slot Is Excluded From The Next Fetch", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(1, 1, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.MatchedBy(func(q models.SlotQuery) bool {
			return q.ProductID == 2 && len(q.Exclude) == 1 && q.Exclude[0].Equal(nineAM)
		})).Return(slotsResult(nineAM.Add(time.Hour)), nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, addRequest(2, 1))

		// Assert
		require.NoError(t, err)
		item, _ := store.Get(2)
		assert.Equal(t, []time.Time{nineAM.Add(time.Hour)}, reservedTimes(t, item))
		assertInvariants(t, store)
	})

	t.Run("Success - Held Slot Offered Anyway Is Refetched", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(1, 1, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{MaxConflictRetries: 2})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(nineAM), nil).Once()
		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(nineAM.Add(2*time.Hour)), nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, addRequest(2, 1))

		// Assert
		require.NoError(t, err)
		item, _ := store.Get(2)
		assert.Equal(t, []time.Time{nineAM.Add(2 * time.Hour)}, reservedTimes(t, item))
		assertInvariants(t, store)
	})

	t.Run("Failure - Conflict Retries Exhausted", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(1, 1, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{MaxConflictRetries: 1})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(slotsResult(nineAM), nil).Times(2)

		// Act
		_, err := cartService.AddItem(ctx, customerID, addRequest(2, 1))

		// Assert
		assertCode(t, err, appErrors.ErrCodeSlotAllocationFailed)
		var shortage *appErrors.SlotShortage
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, 0, shortage.Available)
		assert.Equal(t, 1, shortage.Required)
		assert.False(t, store.Has(2))
	})
}

func TestIncreaseQuantity(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("Success - Fetches Only The Deficit", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 5, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})
		held := hourly(nineAM, 5)
		fresh := hourly(day.Add(24*time.Hour+9*time.Hour), 5)

		fetcher.On("Fetch", mock.Anything, mock.MatchedBy(func(q models.SlotQuery) bool {
			return q.ProductID == 42 && slices.EqualFunc(q.Exclude, held, time.Time.Equal)
		})).Return(slotsResult(fresh...), nil).Once()

		// Act
		result, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)

		// Assert
		require.NoError(t, err)
		item, _ := store.Get(42)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, append(held, fresh...), reservedTimes(t, item))
		assert.Equal(t, 2, result.Items[0].Quantity)
		assertInvariants(t, store)
	})

	t.Run("Failure - Not Enough Slots Leaves Item Unchanged", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 5, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})
		before, _ := store.Get(42)

		fetcher.On("Fetch", mock.Anything, mock.Anything).
			Return(slotsResult(hourly(day.Add(33*time.Hour), 3)...), nil).Once()

		// Act
		result, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)

		// Assert
		assert.Nil(t, result)
		appErr := assertCode(t, err, appErrors.ErrCodeSlotAllocationFailed)
		assert.Equal(t, 409, appErr.StatusCode)

		var shortage *appErrors.SlotShortage
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, 3, shortage.Available)
		assert.Equal(t, 5, shortage.Required)

		after, _ := store.Get(42)
		assert.Equal(t, before, after)
	})

	t.Run("Success - Retry After Persistence Error Adds One Unit", func(t *testing.T) {
		// Arrange
		persister := &togglePersister{}
		persister.failing.Store(true)
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 5, 1, nineAM)}, persister)
		fetcher := &poolFetcher{pool: hourly(nineAM, 20)}
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		// Act
		_, firstErr := cartService.IncreaseQuantity(ctx, customerID, 42, day)
		afterFailure, _ := store.Get(42)
		persister.failing.Store(false)
		_, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)

		// Assert
		assertCode(t, firstErr, appErrors.ErrCodeDatabaseError)
		assert.Equal(t, 1, afterFailure.Quantity)
		assert.Len(t, afterFailure.Slots, 5)

		require.NoError(t, err)
		item, _ := store.Get(42)
		assert.Equal(t, 2, item.Quantity)
		assert.Len(t, item.Slots, 10)
		assertInvariants(t, store)
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		store := cart.NewStore(nil, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		_, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)

		appErr := assertCode(t, err, appErrors.ErrCodeItemNotFound)
		assert.Equal(t, 404, appErr.StatusCode)
		fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Fetch Error", func(t *testing.T) {
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 1, 1, nineAM)}, nil)
		fetcher := mocks.NewSlotFetcher(t)
		cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

		fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, appErrors.SlotFetchError("No bookable slots available")).Once()

		_, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)

		assertCode(t, err, appErrors.ErrCodeSlotFetchFailed)
		item, _ := store.Get(42)
		assert.Equal(t, 1, item.Quantity)
	})
}

func TestDecreaseQuantity(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("Success - Drops The Most Recently Added Slots", func(t *testing.T) {
		// Arrange
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 5, 2, nineAM)}, nil)
		cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

		// Act
		result, err := cartService.DecreaseQuantity(ctx, customerID, 42)

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Items[0].Quantity)
		assert.Equal(t, hourly(nineAM, 5), reservedTimes(t, result.Items[0]))
	})

	t.Run("Success - Removes Item At Zero", func(t *testing.T) {
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 5, 1, nineAM)}, nil)
		cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

		result, err := cartService.DecreaseQuantity(ctx, customerID, 42)

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.False(t, store.Has(42))
	})

	t.Run("Success - Absent Item Is A No-op", func(t *testing.T) {
		store := cart.NewStore([]models.CartLineItem{lineItem(7, 1, 1, nineAM)}, nil)
		cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

		result, err := cartService.DecreaseQuantity(ctx, customerID, 42)

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
	})

	t.Run("Failure - Persistence Error", func(t *testing.T) {
		dbErr := errors.New("disk full")
		store := cart.NewStore([]models.CartLineItem{lineItem(42, 1, 2, nineAM)}, failingPersister{err: dbErr})
		cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

		_, err := cartService.DecreaseQuantity(ctx, customerID, 42)

		assertCode(t, err, appErrors.ErrCodeDatabaseError)
		item, _ := store.Get(42)
		assert.Equal(t, 2, item.Quantity)
		assert.Len(t, item.Slots, 2)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	store := cart.NewStore([]models.CartLineItem{lineItem(1, 1, 1, nineAM), lineItem(2, 2, 1, nineAM.Add(time.Hour))}, nil)
	cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

	result, err := cartService.RemoveItem(ctx, customerID, 1)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(2), result.Items[0].ProductID)

	result, err = cartService.RemoveItem(ctx, customerID, 1)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestGetCart(t *testing.T) {
	// Arrange
	customerID := uuid.New()
	partial := lineItem(2, 3, 1, nineAM.Add(5*time.Hour))
	partial.Slots[2] = models.Placeholder()
	store := cart.NewStore([]models.CartLineItem{lineItem(1, 1, 2, nineAM), partial}, nil)
	cartService := service.NewCartService(storeProvider{store: store}, mocks.NewSlotFetcher(t), config.Cart{})

	// Act
	result, err := cartService.GetCart(context.Background(), customerID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, customerID, result.CustomerID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.UnfilledSlots)
	assert.True(t, decimal.RequireFromString("75").Equal(result.Total))
}

func TestIncreaseDecreaseSymmetry(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	store := cart.NewStore([]models.CartLineItem{lineItem(42, 3, 1, nineAM)}, nil)
	fetcher := poolFetcher{pool: hourly(nineAM, 48)}
	cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})
	original, _ := store.Get(42)

	for range 5 {
		_, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)
		require.NoError(t, err)
		assertInvariants(t, store)

		_, err = cartService.DecreaseQuantity(ctx, customerID, 42)
		require.NoError(t, err)
		assertInvariants(t, store)
	}

	final, _ := store.Get(42)
	assert.Equal(t, original, final)
}

func TestConcurrentIncreaseNeverDoubleBooks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	customerID := uuid.New()
	store := cart.NewStore([]models.CartLineItem{lineItem(42, 2, 1, nineAM)}, nil)
	fetcher := poolFetcher{pool: hourly(nineAM, 64)}
	cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{})

	// Act
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cartService.IncreaseQuantity(ctx, customerID, 42, day)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Assert
	item, _ := store.Get(42)
	assert.Equal(t, 11, item.Quantity)
	assertInvariants(t, store)
}

func TestConcurrentProductsNeverShareSlots(t *testing.T) {
	// Arrange
	ctx := context.Background()
	customerID := uuid.New()
	var items []models.CartLineItem
	for pid := int64(1); pid <= 5; pid++ {
		items = append(items, lineItem(pid, 1, 1, nineAM.Add(time.Duration(pid-1)*time.Hour)))
	}
	store := cart.NewStore(items, nil)
	fetcher := poolFetcher{pool: hourly(nineAM, 64)}
	cartService := service.NewCartService(storeProvider{store: store}, fetcher, config.Cart{MaxConflictRetries: 20})

	// Act
	var wg sync.WaitGroup
	for pid := int64(1); pid <= 5; pid++ {
		for range 3 {
			wg.Add(1)
			go func(pid int64) {
				defer wg.Done()
				_, err := cartService.IncreaseQuantity(ctx, customerID, pid, day)
				assert.NoError(t, err)
			}(pid)
		}
	}
	wg.Wait()

	// Assert
	for _, item := range store.Items() {
		assert.Equal(t, 4, item.Quantity)
	}
	assertInvariants(t, store)
}
