package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SlotTimeFormat is the ISO-8601 layout slot timestamps are persisted with.
// Always UTC, always millisecond precision.
const SlotTimeFormat = "2006-01-02T15:04:05.000Z"

// SlotMarker is one scheduled session of a line item: either a placeholder
// (owed but not chosen yet) or a reserved timestamp.
// The zero value is a placeholder.
type SlotMarker struct {
	at       time.Time
	reserved bool
}

func Placeholder() SlotMarker {
	return SlotMarker{}
}

func Reserved(at time.Time) SlotMarker {
	return SlotMarker{at: NormalizeSlotTime(at), reserved: true}
}

// NormalizeSlotTime drops the location, the monotonic reading and anything
// finer than a millisecond so equal instants compare equal.
func NormalizeSlotTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (m SlotMarker) IsPlaceholder() bool {
	return !m.reserved
}

func (m SlotMarker) Time() (time.Time, bool) {
	return m.at, m.reserved
}

func (m SlotMarker) String() string {
	if !m.reserved {
		return ""
	}

	return m.at.Format(SlotTimeFormat)
}

func (m SlotMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SlotMarker) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Placeholder()
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("slot marker must be a string: %w", err)
	}

	parsed, err := ParseSlotMarker(raw)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// ParseSlotMarker turns "" into a placeholder and any RFC 3339 timestamp into
// a reserved marker. Anything else is rejected.
func ParseSlotMarker(raw string) (SlotMarker, error) {
	if raw == "" {
		return Placeholder(), nil
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return SlotMarker{}, fmt.Errorf("invalid slot timestamp %q: %w", raw, err)
	}

	return Reserved(at), nil
}

// ReservedMarkers wraps allocated timestamps as reserved markers.
func ReservedMarkers(times []time.Time) []SlotMarker {
	markers := make([]SlotMarker, len(times))
	for i, t := range times {
		markers[i] = Reserved(t)
	}

	return markers
}

// SlotQuery asks the availability backend for bookable slots of a product.
type SlotQuery struct {
	ProductID int64
	Date      time.Time
	Exclude   []time.Time
}

type AvailableSlot struct {
	Timestamp     time.Time `json:"timestamp"`
	EligibleStaff []int64   `json:"eligibleStaff"`
}

type SlotQueryResult struct {
	Slots               []AvailableSlot `json:"slots"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
}

// Timestamps returns the slot times in backend order.
func (r *SlotQueryResult) Timestamps() []time.Time {
	times := make([]time.Time, len(r.Slots))
	for i, slot := range r.Slots {
		times[i] = slot.Timestamp
	}

	return times
}
