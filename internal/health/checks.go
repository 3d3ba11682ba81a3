package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Pinger is a dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	Availability Pinger
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := New(
		health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
		AvailabilityCheck(endpoints.Availability, cfg.Availability.RequestTimeout),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// New builds the health instance for the given checks.
func New(checks ...health.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "tutoring-cart",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// AvailabilityCheck probes the availability backend. Carts cannot take new
// slots without it, so a failure marks the service unavailable.
func AvailabilityCheck(p Pinger, timeout time.Duration) health.Config {
	return health.Config{
		Name:      "availability",
		Timeout:   timeout,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			if p == nil {
				return fmt.Errorf("availability client is not initialized")
			}

			if err := p.Ping(ctx); err != nil {
				return fmt.Errorf("failed to reach the availability service: %w", err)
			}

			return nil
		},
	}
}
