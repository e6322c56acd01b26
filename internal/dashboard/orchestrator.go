// Package dashboard builds page view-models from the upstream fitness API.
// Each page load fans out its queries concurrently, isolates optional-source
// failures into absent slots, and merges the survivors into one immutable
// snapshot with display-ready derived metrics.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// Mandatory page queries; failure of any of these aborts the page load.
// Optional queries (ML sources, prediction assists) degrade to absent slots.
const (
	QueryStatistics   = "statistics"
	QueryProgress     = "progress"
	QueryWorkouts     = "workouts"
	QueryNutrition    = "nutrition"
	QueryDailySummary = "daily_summary"
	QueryProfile      = "profile"
	QueryTrends       = "trends"

	QueryInsights           = "workout_insights"
	QueryPredictPerformance = "predict_performance"
	QueryRecommendGoals     = "recommend_goals"
)

// Config holds configuration for the orchestrator.
type Config struct {
	// Client is the upstream fitness API client.
	Client *fitapi.Client

	// Logger for orchestration events.
	Logger zerolog.Logger

	// QueryTimeout bounds each individual query so one slow source cannot
	// stall page readiness (default: 10 seconds). A timed-out query counts
	// as failed for that query only.
	QueryTimeout time.Duration
}

// Orchestrator fans out a page's queries against the upstream API and
// assembles the results into view-models.
type Orchestrator struct {
	client       *fitapi.Client
	logger       zerolog.Logger
	queryTimeout time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// New creates a new orchestrator.
func New(cfg Config) *Orchestrator {
	queryTimeout := cfg.QueryTimeout
	if queryTimeout == 0 {
		queryTimeout = 10 * time.Second
	}

	return &Orchestrator{
		client:       cfg.Client,
		logger:       cfg.Logger,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// PageError is a mandatory query failure. It aborts the page load and names
// the query so the caller can offer a targeted retry.
type PageError struct {
	Query string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page load failed: query %q: %v", e.Query, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// mandatory runs one blocking query under the per-query timeout. Its error
// aborts the page load.
func mandatory[T any](ctx context.Context, o *Orchestrator, name string, fetch func(context.Context) (T, error)) (T, error) {
	qctx, cancel := context.WithTimeout(ctx, o.queryTimeout)
	defer cancel()

	value, err := fetch(qctx)
	if err != nil {
		return value, &PageError{Query: name, Err: err}
	}
	return value, nil
}

// optional runs one degradable query under the per-query timeout. Any
// failure becomes an absent slot; it never propagates into the page result.
func optional[T any](ctx context.Context, o *Orchestrator, name string, fetch func(context.Context) (T, error)) Slot[T] {
	qctx, cancel := context.WithTimeout(ctx, o.queryTimeout)
	defer cancel()

	value, err := fetch(qctx)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Str("query", name).
			Msg("optional source degraded")
		return Absent[T](err)
	}
	return Present(value)
}
