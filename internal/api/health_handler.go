package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/newsletter-subscriber/internal/pkg/httputil"
)

// Probe thresholds for the storage check.
const (
	pingTimeout   = 3 * time.Second
	slowThreshold = time.Second
)

// Pinger is satisfied by the storage guard and every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string       `json:"status"` // "healthy", "degraded", "unhealthy"
	Uptime  string       `json:"uptime"`
	Storage StorageCheck `json:"storage"`
}

// StorageCheck reports the result of pinging the subscriber store.
type StorageCheck struct {
	Backend string `json:"backend"`
	Status  string `json:"status"` // "up", "down", "degraded"
	Latency string `json:"latency,omitempty"`
}

// HealthChecker reports liveness and storage readiness.
type HealthChecker struct {
	storage   Pinger
	backend   string
	startedAt time.Time
}

// NewHealthChecker creates a checker for the named storage backend.
func NewHealthChecker(storage Pinger, backend string) *HealthChecker {
	return &HealthChecker{storage: storage, backend: backend, startedAt: time.Now()}
}

// HandleHealth always responds 200; the status field conveys health.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	check := hc.pingStorage(r.Context())
	httputil.JSON(w, http.StatusOK, HealthStatus{
		Status:  check.overall(),
		Uptime:  formatUptime(time.Since(hc.startedAt)),
		Storage: check,
	})
}

// HandleLiveness returns 200 while the process is running.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": formatUptime(time.Since(hc.startedAt)),
	})
}

// HandleReadiness returns 503 when the storage backend does not answer.
// Backend errors are never echoed to the caller.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	check := hc.pingStorage(r.Context())

	status := http.StatusOK
	ready := check.Status != "down"
	if !ready {
		status = http.StatusServiceUnavailable
	}
	httputil.JSON(w, status, map[string]any{
		"ready":   ready,
		"storage": check,
	})
}

func (hc *HealthChecker) pingStorage(ctx context.Context) StorageCheck {
	check := StorageCheck{Backend: hc.backend, Status: "down"}
	if hc.storage == nil {
		return check
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := hc.storage.Ping(ctx)
	elapsed := time.Since(start)
	check.Latency = elapsed.Round(time.Millisecond).String()

	switch {
	case err != nil:
	case elapsed > slowThreshold:
		check.Status = "degraded"
	default:
		check.Status = "up"
	}
	return check
}

func (c StorageCheck) overall() string {
	switch c.Status {
	case "up":
		return "healthy"
	case "degraded":
		return "degraded"
	default:
		return "unhealthy"
	}
}

// formatUptime renders d like "3d 4h 12m 5s", dropping leading zero units.
func formatUptime(d time.Duration) string {
	secs := int(d.Seconds())
	days, secs := secs/86400, secs%86400
	hours, secs := secs/3600, secs%3600
	mins, secs := secs/60, secs%60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
