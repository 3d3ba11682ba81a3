package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartLineItem struct {
	ProductID       int64           `json:"productId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DurationLabel   string          `json:"durationLabel"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	SessionsPerUnit int             `json:"sessionsPerUnit"`
	Quantity        int             `json:"quantity"`
	Slots           []SlotMarker    `json:"slots"`
}

// Clone returns a copy that shares no slot storage with the receiver.
func (i CartLineItem) Clone() CartLineItem {
	clone := i
	clone.Slots = append([]SlotMarker(nil), i.Slots...)
	if clone.Slots == nil {
		clone.Slots = []SlotMarker{}
	}

	return clone
}

func (i CartLineItem) UnfilledSlots() int {
	count := 0
	for _, slot := range i.Slots {
		if slot.IsPlaceholder() {
			count++
		}
	}

	return count
}

type Cart struct {
	CustomerID    uuid.UUID       `json:"customerId"`
	Items         []CartLineItem  `json:"items"`
	Total         decimal.Decimal `json:"total"`
	UnfilledSlots int             `json:"unfilledSlots"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewCart(customerID uuid.UUID, items []CartLineItem, updatedAt time.Time) *Cart {
	cart := &Cart{
		CustomerID: customerID,
		Items:      items,
		Total:      decimal.Zero,
		UpdatedAt:  updatedAt,
	}

	if cart.Items == nil {
		cart.Items = []CartLineItem{}
	}

	for _, item := range cart.Items {
		cart.Total = cart.Total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		cart.UnfilledSlots += item.UnfilledSlots()
	}

	return cart
}

// EncodeLineItems is the persisted form of a cart's line items.
func EncodeLineItems(items []CartLineItem) ([]byte, error) {
	if items == nil {
		items = []CartLineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return data, nil
}

func DecodeLineItems(data []byte) ([]CartLineItem, error) {
	items := []CartLineItem{}
	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if items == nil {
		items = []CartLineItem{}
	}

	return items, nil
}

type AddItemRequest struct {
	ProductID       int64           `json:"productId"       validate:"required,gt=0"`
	Name            string          `json:"name"            validate:"required,max=255"`
	Description     string          `json:"description"     validate:"max=2000"`
	DurationLabel   string          `json:"durationLabel"   validate:"max=64"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	SessionsPerUnit int             `json:"sessionsPerUnit"`
	Date            string          `json:"date,omitempty"  validate:"omitempty,datetime=2006-01-02"`
}
