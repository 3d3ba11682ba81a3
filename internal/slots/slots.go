// Package slots holds the pure slot arithmetic shared by the cart store and
// the cart workflows: how many slots a line item needs, which slots the cart
// already holds, how candidates are picked and how a slot array is brought to
// a target length.
package slots

import (
	"sort"
	"time"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
)

// Required is the slot count a line item must carry for the given quantity.
func Required(sessionsPerUnit, quantity int) int {
	if sessionsPerUnit <= 0 || quantity <= 0 {
		return 0
	}

	return sessionsPerUnit * quantity
}

// BookedSet is the set of concrete slot instants held by a cart, keyed by
// unix milliseconds.
type BookedSet map[int64]struct{}

func (b BookedSet) Contains(t time.Time) bool {
	_, ok := b[models.NormalizeSlotTime(t).UnixMilli()]
	return ok
}

func (b BookedSet) add(t time.Time) {
	b[models.NormalizeSlotTime(t).UnixMilli()] = struct{}{}
}

// Times returns the booked instants soonest-first.
func (b BookedSet) Times() []time.Time {
	keys := make([]int64, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	times := make([]time.Time, len(keys))
	for i, k := range keys {
		times[i] = time.UnixMilli(k).UTC()
	}

	return times
}

// BookedSlots flattens every line item's reserved slots, skipping placeholders.
func BookedSlots(items []models.CartLineItem) BookedSet {
	booked := BookedSet{}

	for _, item := range items {
		for _, slot := range item.Slots {
			if at, ok := slot.Time(); ok {
				booked.add(at)
			}
		}
	}

	return booked
}

// Allocate takes the first required candidates in the order given.
// Repeated candidates count once.
func Allocate(required int, candidates []time.Time) ([]time.Time, error) {
	if required <= 0 {
		return []time.Time{}, nil
	}

	seen := BookedSet{}
	unique := make([]time.Time, 0, len(candidates))

	for _, candidate := range candidates {
		if seen.Contains(candidate) {
			continue
		}

		seen.add(candidate)
		unique = append(unique, models.NormalizeSlotTime(candidate))
	}

	if len(unique) < required {
		return nil, errors.SlotAllocationError(len(unique), required)
	}

	return unique[:required:required], nil
}

// Reconcile returns a copy of current brought to exactly target entries:
// the newest entries are dropped first, missing ones become placeholders.
func Reconcile(current []models.SlotMarker, target int) []models.SlotMarker {
	if target < 0 {
		target = 0
	}

	// zero SlotMarker is a placeholder
	reconciled := make([]models.SlotMarker, target)
	copy(reconciled, current)

	return reconciled
}
