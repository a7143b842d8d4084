package handler

// HealthHandler verifies that the database is reachable and the classroom
// schema is in place, so the tool can be probed without running a report.
import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/classroom/internal/app"
	"github.com/rs/zerolog"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ErrUnhealthy is returned by Check when at least one check failed.
var ErrUnhealthy = errors.New("health check failed")

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the outcome of every configured check.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Driver      string                 `json:"driver"`
	Checks      map[string]CheckResult `json:"checks"`
}

// HealthHandler embeds the base Handler to reuse shared app dependencies.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(a),
	}
}

// Check runs the configured checks, each bounded by the configured timeout.
//
// It always returns the report. The error is ErrUnhealthy when any check
// failed, nil otherwise.
func (h *HealthHandler) Check(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.app.Config.Primary.Env,
		Driver:      h.app.DB.Driver,
		Checks:      make(map[string]CheckResult),
	}

	checks := h.app.Config.Observability.HealthChecks
	err := h.run(ctx, "health_check", strings.Join(checks.Checks, ","), func(ctx context.Context) error {
		logger := h.app.Logger.With().Str("operation", "health_check").Logger()

		for _, name := range checks.Checks {
			result := h.runCheck(ctx, &logger, name, checks.Timeout)
			report.Checks[name] = result
			if result.Status != StatusHealthy {
				report.Status = StatusUnhealthy
			}
		}

		if report.Status != StatusHealthy {
			h.recordFailure("overall", "overall_unhealthy", 0, "")
			return ErrUnhealthy
		}
		return nil
	})

	return report, err
}

func (h *HealthHandler) runCheck(ctx context.Context, logger *zerolog.Logger, name string, timeout time.Duration) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var err error

	switch name {
	case "database":
		err = h.app.DB.Ping(ctx)
	case "schema":
		var missing []string
		missing, err = h.app.DB.MissingTables(ctx)
		if err == nil && len(missing) > 0 {
			err = fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
		}
	default:
		err = fmt.Errorf("unknown check %q", name)
	}

	elapsed := time.Since(start)
	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg(name + " health check failed")

		h.recordFailure(name, name+"_unhealthy", elapsed, err.Error())

		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	logger.Info().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg(name + " health check passed")

	return CheckResult{Status: StatusHealthy, ResponseTime: elapsed.String()}
}

// recordFailure records a New Relic custom event if enabled.
func (h *HealthHandler) recordFailure(checkType, errorType string, elapsed time.Duration, message string) {
	nrApp := h.app.LoggerService.GetApplication()
	if nrApp == nil {
		return
	}

	event := map[string]any{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if message != "" {
		event["error_message"] = message
	}
	nrApp.RecordCustomEvent("HealthCheckError", event)
}
