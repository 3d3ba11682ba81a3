package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/slots"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Repository is the durable storage behind every customer's Store.
type Repository interface {
	GetCartItems(ctx context.Context, customerID uuid.UUID) ([]models.CartLineItem, error)
	SaveCartItems(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) error
}

// Registry hands out one Store per customer, loading it from the repository
// the first time it is asked for.
type Registry struct {
	repo   Repository
	mu     sync.Mutex
	stores map[uuid.UUID]*Store
	loads  singleflight.Group
}

func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		stores: make(map[uuid.UUID]*Store),
	}
}

func (r *Registry) Cart(ctx context.Context, customerID uuid.UUID) (*Store, error) {
	if store, ok := r.cached(customerID); ok {
		return store, nil
	}

	v, err, _ := r.loads.Do(customerID.String(), func() (any, error) {
		if store, ok := r.cached(customerID); ok {
			return store, nil
		}

		items, err := r.repo.GetCartItems(ctx, customerID)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
		}

		store := NewStore(repair(ctx, customerID, items), &repositoryPersister{repo: r.repo, customerID: customerID})

		r.mu.Lock()
		r.stores[customerID] = store
		r.mu.Unlock()

		return store, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Store), nil
}

func (r *Registry) cached(customerID uuid.UUID) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[customerID]

	return store, ok
}

// repair brings persisted items that violate the slot count back in line,
// padding with placeholders so a later fetch can fill them.
func repair(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) []models.CartLineItem {
	logger := middleware.LoggerFromContext(ctx)
	repaired := make([]models.CartLineItem, 0, len(items))
	booked := slots.BookedSet{}

	for _, item := range items {
		if item.SessionsPerUnit <= 0 || item.Quantity <= 0 {
			logger.Warn("Dropping invalid persisted line item",
				slog.String("customerId", customerID.String()),
				slog.Int64("productId", item.ProductID),
				slog.Int("sessionsPerUnit", item.SessionsPerUnit),
				slog.Int("quantity", item.Quantity))
			continue
		}

		if want := slots.Required(item.SessionsPerUnit, item.Quantity); len(item.Slots) != want {
			logger.Warn("Reconciling persisted line item slots",
				slog.String("customerId", customerID.String()),
				slog.Int64("productId", item.ProductID),
				slog.Int("have", len(item.Slots)),
				slog.Int("want", want))
			item.Slots = slots.Reconcile(item.Slots, want)
		}

		for i, marker := range item.Slots {
			at, ok := marker.Time()
			if !ok {
				continue
			}

			if booked.Contains(at) {
				logger.Warn("Releasing duplicate persisted slot",
					slog.String("customerId", customerID.String()),
					slog.Int64("productId", item.ProductID),
					slog.String("slot", marker.String()))
				item.Slots[i] = models.Placeholder()
				continue
			}

			booked[at.UnixMilli()] = struct{}{}
		}

		repaired = append(repaired, item)
	}

	return repaired
}

type repositoryPersister struct {
	repo       Repository
	customerID uuid.UUID
}

func (p *repositoryPersister) Persist(ctx context.Context, items []models.CartLineItem) error {
	return p.repo.SaveCartItems(ctx, p.customerID, items)
}
