package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/cache"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/config"
	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const slotsPath = "/api/v1/availability/slots"

// maximum accepted response body
const maxBodyBytes = 1 << 20

type Client struct {
	baseURL    string
	healthPath string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[*models.SlotQueryResult]
	requests   singleflight.Group
}

// NewClient builds a client for the availability backend. The cache is optional.
func NewClient(cfg config.Availability, c cache.Cache) *Client {

	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "availability",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a caller abandoning its request says nothing about the backend
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		healthPath: cfg.HealthPath,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache:    c,
		cacheTTL: cfg.CacheTTL,
		timeout:  cfg.RequestTimeout,
		breaker:  gobreaker.NewCircuitBreaker[*models.SlotQueryResult](settings),
	}
}

// Fetch returns the bookable slots for the query in backend order with every
// excluded timestamp removed. Any failure, including an empty result, is
// reported as SLOT_FETCH_FAILED.
func (c *Client) Fetch(ctx context.Context, q models.SlotQuery) (*models.SlotQueryResult, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.Int64("productId", q.ProductID))

	if err := ctx.Err(); err != nil {
		return nil, appErrors.SlotFetchError("Request cancelled before slots were fetched").WithError(err)
	}

	key := cache.AvailabilityKey(q.ProductID, q.Date)

	result, cached := c.fromCache(ctx, key)
	if !cached {
		var err error
		result, err = c.load(ctx, key, q)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("Caller gave up waiting for available slots", slog.String("error", err.Error()))
				return nil, appErrors.SlotFetchError("Request cancelled before slots were fetched").WithError(err)
			}

			logger.Error("Failed to fetch available slots", slog.String("error", err.Error()))

			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, appErrors.SlotFetchError("Availability service is unavailable").WithError(err)
			}

			return nil, appErrors.SlotFetchError("Failed to fetch available slots").WithError(err)
		}
	}

	filtered := filterExcluded(result, q.Exclude)
	if len(filtered.Slots) == 0 {
		logger.Warn("No bookable slots returned", slog.Int("excluded", len(q.Exclude)))
		return nil, appErrors.SlotFetchError("No bookable slots available")
	}

	return filtered, nil
}

// load queries the backend at most once per key at a time and caches the
// unfiltered answer. The shared request runs detached from the callers'
// cancellation, bounded by the client timeout; a caller whose context ends
// stops waiting without affecting the others or the breaker.
func (c *Client) load(ctx context.Context, key string, q models.SlotQuery) (*models.SlotQueryResult, error) {
	ch := c.requests.DoChan(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			flightCtx, cancel = context.WithTimeout(flightCtx, c.timeout)
			defer cancel()
		}

		result, err := c.breaker.Execute(func() (*models.SlotQueryResult, error) {
			return c.request(flightCtx, q.ProductID, q.Date)
		})
		if err != nil {
			return nil, err
		}

		c.toCache(flightCtx, key, result)

		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*models.SlotQueryResult), nil
	}
}

// Ping reports whether the backend health endpoint answers with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("availability health request failed: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("availability health returned status %d", resp.StatusCode)
	}

	return nil
}

// request asks for the full availability of a product on a day. Exclusions
// are applied locally so that one answer serves every cart.
func (c *Client) request(ctx context.Context, productID int64, date time.Time) (*models.SlotQueryResult, error) {

	params := url.Values{}
	params.Set("productId", strconv.FormatInt(productID, 10))
	params.Set("date", date.UTC().Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+slotsPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build slot request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("availability backend returned status %d", resp.StatusCode)
	}

	var result models.SlotQueryResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode slot response: %w", err)
	}

	return &result, nil
}

func (c *Client) fromCache(ctx context.Context, key string) (*models.SlotQueryResult, bool) {
	if c.cache == nil {
		return nil, false
	}

	var result models.SlotQueryResult

	found, err := c.cache.Get(ctx, key, &result)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Availability cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}

	if !found {
		return nil, false
	}

	return &result, true
}

func (c *Client) toCache(ctx context.Context, key string, result *models.SlotQueryResult) {
	if c.cache == nil {
		return
	}

	if err := c.cache.Set(ctx, key, result, c.cacheTTL); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Availability cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// filterExcluded returns a copy of result without excluded timestamps. Slot
// times are normalised to UTC millisecond precision.
func filterExcluded(result *models.SlotQueryResult, exclude []time.Time) *models.SlotQueryResult {

	excluded := make(map[int64]struct{}, len(exclude))
	for _, t := range exclude {
		excluded[t.UnixMilli()] = struct{}{}
	}

	filtered := &models.SlotQueryResult{
		Slots:               make([]models.AvailableSlot, 0, len(result.Slots)),
		SlotDurationMinutes: result.SlotDurationMinutes,
	}

	for _, slot := range result.Slots {
		at := models.NormalizeSlotTime(slot.Timestamp)
		if _, skip := excluded[at.UnixMilli()]; skip {
			continue
		}

		filtered.Slots = append(filtered.Slots, models.AvailableSlot{Timestamp: at, EligibleStaff: slot.EligibleStaff})
	}

	return filtered
}
