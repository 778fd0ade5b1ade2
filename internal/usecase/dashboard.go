package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"HazardBoard/internal/analytics"
	"HazardBoard/internal/dataset"
	"HazardBoard/internal/domain"
)

const defaultTopN = 10

// ErrSuperseded signals that a newer filter event started while this pass
// was recomputing; its results were discarded, latest input wins.
var ErrSuperseded = errors.New("pass superseded by newer filter input")

// State describes what the orchestrator is doing.
type State string

const (
	// StateIdle means the last computed bundle is being served.
	StateIdle State = "idle"
	// StateRecomputing means at least one pass is in flight.
	StateRecomputing State = "recomputing"
)

// FilterEvent carries the raw control selections of one user interaction.
type FilterEvent struct {
	Categories    []string
	LocationUnits []string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// DashboardDeps wires the dashboard orchestrator.
type DashboardDeps struct {
	Store *dataset.Store
	// TopN bounds every ranking view; defaults to 10.
	TopN int
	// SeriesGroup optionally splits the time series by a field name
	// (e.g. "category"); empty keeps a single line.
	SeriesGroup string
	Logger      *slog.Logger
}

// Dashboard is the reactive core: it turns each filter event into one
// filter pass, fans the single subset out to every aggregate view, and
// publishes the result bundle atomically. Between passes it is idle,
// serving the last published bundle.
type Dashboard struct {
	store       *dataset.Store
	topN        int
	seriesField *analytics.Field
	logger      *slog.Logger

	mu         sync.Mutex
	generation uint64
	inFlight   int
	bundle     *domain.Bundle
	updates    chan domain.Bundle
}

// NewDashboard constructs the orchestrator.
func NewDashboard(deps DashboardDeps) (*Dashboard, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("dashboard requires a dataset store")
	}

	topN := deps.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	board := &Dashboard{
		store:   deps.Store,
		topN:    topN,
		logger:  logger,
		updates: make(chan domain.Bundle, 1),
	}

	if deps.SeriesGroup != "" {
		field, ok := analytics.FieldByName(deps.SeriesGroup)
		if !ok {
			return nil, fmt.Errorf("unknown series group field %q", deps.SeriesGroup)
		}
		board.seriesField = &field
	}

	return board, nil
}

// Apply handles one filter-change event: build criteria, filter once, run
// every aggregator and the table formatter against that single subset, and
// publish the bundle. Invalid criteria reject before any recompute and the
// previous bundle stays in place. If a newer event arrives mid-pass the
// stale pass discards its work and returns ErrSuperseded.
func (d *Dashboard) Apply(ctx context.Context, event FilterEvent) (domain.Bundle, error) {
	criteria, err := analytics.NewCriteria(event.Categories, event.LocationUnits, event.DateFrom, event.DateTo)
	if err != nil {
		return domain.Bundle{}, err
	}

	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.inFlight++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight--
		d.mu.Unlock()
	}()

	d.logger.Debug("pass recomputing", "generation", gen, "unrestricted", criteria.Unrestricted())

	bundle := d.compute(criteria)
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, fmt.Errorf("pass aborted: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation {
		d.logger.Debug("pass superseded", "generation", gen, "latest", d.generation)
		return domain.Bundle{}, ErrSuperseded
	}

	d.bundle = &bundle
	d.pushUpdate(bundle)
	d.logger.Info("bundle published",
		"pass_id", bundle.PassID,
		"articles", bundle.TotalArticles,
		"generation", gen)

	return bundle, nil
}

// compute runs the filter once and derives every view from that subset.
// The aggregators are pure reads of shared immutable data, so they run
// concurrently; the bundle is assembled only after all of them finish.
func (d *Dashboard) compute(criteria domain.FilterCriteria) domain.Bundle {
	subset := analytics.Filter(d.store, criteria)

	bundle := domain.Bundle{
		PassID:        uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Criteria:      criteria,
		TotalArticles: len(subset),
	}

	var wg sync.WaitGroup
	run := func(job func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job()
		}()
	}

	run(func() { bundle.CategoryCounts = analytics.CountBy(subset, analytics.FieldCategory) })
	run(func() { bundle.SentimentCounts = analytics.CountBy(subset, analytics.FieldSentiment) })
	run(func() { bundle.TopLocations = analytics.TopN(subset, analytics.FieldLocationUnit, d.topN) })
	run(func() { bundle.TopCategories = analytics.TopN(subset, analytics.FieldCategory, d.topN) })
	run(func() { bundle.TopSources = analytics.TopN(subset, analytics.FieldSource, d.topN) })
	run(func() {
		bundle.LocationCategoryTop = analytics.CrossTabTopN(subset, analytics.FieldLocationUnit, analytics.FieldCategory, d.topN)
	})
	run(func() {
		if d.seriesField != nil {
			bundle.TimeSeries = analytics.TimeSeriesBy(subset, *d.seriesField)
		} else {
			bundle.TimeSeries = analytics.TimeSeries(subset)
		}
	})
	run(func() { bundle.UniqueSources = analytics.UniqueCount(subset, analytics.FieldSource) })
	run(func() { bundle.UniqueCountries = analytics.UniqueCount(subset, analytics.FieldCountry) })
	run(func() { bundle.Table = analytics.FormatTable(subset) })

	wg.Wait()

	return bundle
}

// State reports Idle when no pass is in flight.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inFlight > 0 {
		return StateRecomputing
	}
	return StateIdle
}

// Bundle returns the last published bundle, if any pass completed yet.
func (d *Dashboard) Bundle() (domain.Bundle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bundle == nil {
		return domain.Bundle{}, false
	}
	return *d.bundle, true
}

// Updates exposes a capacity-one, latest-wins stream of published bundles
// for push-style presentation layers. Slow consumers only ever miss
// intermediate bundles, never the newest one.
func (d *Dashboard) Updates() <-chan domain.Bundle {
	return d.updates
}

// pushUpdate replaces any unconsumed bundle with the fresh one.
// Caller holds d.mu.
func (d *Dashboard) pushUpdate(bundle domain.Bundle) {
	select {
	case <-d.updates:
	default:
	}
	d.updates <- bundle
}
