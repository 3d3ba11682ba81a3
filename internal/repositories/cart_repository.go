package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetCartItems(ctx context.Context, customerID uuid.UUID) ([]models.CartLineItem, error)
	SaveCartItems(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetCartItems returns an empty collection for a customer without a stored cart.
func (r *cartRepository) GetCartItems(ctx context.Context, customerID uuid.UUID) ([]models.CartLineItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT items
		FROM carts
		WHERE customer_id = $1
	`

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, customerID).Scan(&itemsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.CartLineItem{}, nil
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return models.DecodeLineItems(itemsJSON)
}

func (r *cartRepository) SaveCartItems(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := models.EncodeLineItems(items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (customer_id, items, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (customer_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, customerID, itemsJSON); err != nil {
		return fmt.Errorf("failed to save the cart: %w", err)
	}

	return nil
}
