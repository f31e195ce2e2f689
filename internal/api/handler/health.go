package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthProbe is one named backing-store check run by the readiness
// endpoint. Check must respect the context deadline.
type HealthProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// MongoProbe reports whether the happening store answers a ping.
func MongoProbe(db *mongo.Database) HealthProbe {
	return HealthProbe{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

// RedisProbe reports whether the registration dedup store answers a ping.
func RedisProbe(rdb *redis.Client) HealthProbe {
	return HealthProbe{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}
}

// HealthHandler serves the liveness and readiness endpoints. Liveness only
// confirms the process answers; readiness runs every configured probe.
type HealthHandler struct {
	probes []HealthProbe
}

func NewHealthHandler(probes ...HealthProbe) *HealthHandler {
	return &HealthHandler{probes: probes}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness answers 200 when every probe passes and 503 otherwise. The
// per-probe result ("ok" or the error text) is reported under "checks".
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.probes))
	status := "ok"
	code := http.StatusOK
	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			checks[p.Name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		checks[p.Name] = "ok"
	}

	return c.JSON(code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
