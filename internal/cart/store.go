// Package cart owns the in-memory line items of each customer's cart and the
// slot invariants that hold on every committed mutation:
//
//   - every line item carries exactly sessionsPerUnit*quantity slot markers;
//   - no reserved timestamp appears twice across the cart.
//
// Every mutation is written through to the configured Persister and only
// becomes visible once the write succeeded.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/slots"
)

var (
	ErrItemNotFound   = errors.New("line item not found")
	ErrSlotCount      = errors.New("slot count does not match quantity")
	ErrInvalidItem    = errors.New("invalid line item")
	ErrSlotConflict   = errors.New("slot already reserved by another line item")
	ErrPersistFailure = errors.New("cart persistence failed")
)

// Persister receives the full line item collection after every mutation.
type Persister interface {
	Persist(ctx context.Context, items []models.CartLineItem) error
}

type Store struct {
	mu        sync.RWMutex
	items     []models.CartLineItem
	persister Persister
	updatedAt time.Time
}

func NewStore(items []models.CartLineItem, persister Persister) *Store {
	store := &Store{
		items:     make([]models.CartLineItem, 0, len(items)),
		persister: persister,
		updatedAt: time.Now(),
	}

	for _, item := range items {
		store.items = append(store.items, item.Clone())
	}

	return store
}

func (s *Store) Get(productID int64) (models.CartLineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return models.CartLineItem{}, false
	}

	return s.items[idx].Clone(), true
}

func (s *Store) Has(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(productID) >= 0
}

// Items returns a deep copy of the line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.updatedAt
}

// AddItem inserts a new line item. An item whose product is already in the
// cart is left alone and reported with added=false.
func (s *Store) AddItem(ctx context.Context, item models.CartLineItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.ProductID) >= 0 {
		return false, nil
	}

	if err := validate(item.SessionsPerUnit, item.Quantity, item.Slots); err != nil {
		return false, err
	}

	if err := s.checkConflicts(item.ProductID, item.Slots); err != nil {
		return false, err
	}

	candidate := append(s.snapshot(), item.Clone())

	if err := s.commit(ctx, candidate); err != nil {
		return false, err
	}

	return true, nil
}

// RemoveItem deletes the line item; removing an absent item is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return nil
	}

	candidate := s.snapshot()
	candidate = append(candidate[:idx], candidate[idx+1:]...)

	return s.commit(ctx, candidate)
}

// SetQuantityAndSlots replaces quantity and slots atomically, or not at all.
func (s *Store) SetQuantityAndSlots(ctx context.Context, productID int64, quantity int, markers []models.SlotMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return ErrItemNotFound
	}

	if err := validate(s.items[idx].SessionsPerUnit, quantity, markers); err != nil {
		return err
	}

	if err := s.checkConflicts(productID, markers); err != nil {
		return err
	}

	candidate := s.snapshot()
	candidate[idx].Quantity = quantity
	candidate[idx].Slots = append([]models.SlotMarker(nil), markers...)

	return s.commit(ctx, candidate)
}

// DecrementQuantity lowers the quantity by one without any network I/O.
// At zero the item is removed; otherwise the slots are reconciled to the new
// count. Only a persistence failure is reported, and it leaves the item as
// it was.
func (s *Store) DecrementQuantity(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return nil
	}

	candidate := s.snapshot()
	item := &candidate[idx]
	item.Quantity--

	if item.Quantity <= 0 {
		candidate = append(candidate[:idx], candidate[idx+1:]...)
	} else {
		item.Slots = slots.Reconcile(item.Slots, slots.Required(item.SessionsPerUnit, item.Quantity))
	}

	return s.commit(ctx, candidate)
}

func (s *Store) indexOf(productID int64) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}

	return -1
}

func (s *Store) snapshot() []models.CartLineItem {
	items := make([]models.CartLineItem, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}

	return items
}

// checkConflicts rejects markers that repeat a timestamp, either among
// themselves or against any other line item.
func (s *Store) checkConflicts(productID int64, markers []models.SlotMarker) error {
	others := make([]models.CartLineItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ProductID != productID {
			others = append(others, item)
		}
	}

	booked := slots.BookedSlots(others)

	for _, marker := range markers {
		at, ok := marker.Time()
		if !ok {
			continue
		}

		if booked.Contains(at) {
			return fmt.Errorf("%w: %s", ErrSlotConflict, marker.String())
		}

		booked[at.UnixMilli()] = struct{}{}
	}

	return nil
}

// commit persists candidate and installs it as the cart contents. On a
// persistence failure the current items stay untouched. Must be called with
// the write lock held; candidate must not share storage with s.items.
func (s *Store) commit(ctx context.Context, candidate []models.CartLineItem) error {
	if s.persister != nil {
		if err := s.persister.Persist(ctx, candidate); err != nil {
			return appErrors.DatabaseError("Failed to persist cart").WithError(fmt.Errorf("%w: %w", ErrPersistFailure, err))
		}
	}

	s.items = candidate
	s.updatedAt = time.Now()

	return nil
}

func validate(sessionsPerUnit, quantity int, markers []models.SlotMarker) error {
	if sessionsPerUnit <= 0 {
		return fmt.Errorf("%w: sessions per unit must be positive, got %d", ErrInvalidItem, sessionsPerUnit)
	}

	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidItem, quantity)
	}

	if want := slots.Required(sessionsPerUnit, quantity); len(markers) != want {
		return fmt.Errorf("%w: have %d, want %d", ErrSlotCount, len(markers), want)
	}

	return nil
}
