package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const AvailabilityKeyPrefix = "availability"

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// AvailabilityKey identifies the unfiltered slot availability of a product
// on one day. Exclusions are applied after the cache read, so they are not
// part of the key.
func AvailabilityKey(productID int64, date time.Time) string {
	return Key(AvailabilityKeyPrefix, strconv.FormatInt(productID, 10)+":"+date.UTC().Format(time.DateOnly))
}
