package workers

import (
	"context"
	"errors"

	"github.com/Jorgecuenca1/market-stock/internal/updater"
)

// PriceWorker runs the price update domain on a schedule
type PriceWorker struct {
	coordinator *updater.Coordinator
}

// NewPriceWorker creates new price worker
func NewPriceWorker(coordinator *updater.Coordinator) *PriceWorker {
	return &PriceWorker{coordinator: coordinator}
}

// Name returns worker name
func (w *PriceWorker) Name() string { return "price_updater" }

// Run executes one price update cycle
func (w *PriceWorker) Run(ctx context.Context) error {
	_, err := w.coordinator.RunPrices(ctx)
	return ignoreBusy(err)
}

// NewsWorker runs the news update domain on a schedule
type NewsWorker struct {
	coordinator *updater.Coordinator
}

// NewNewsWorker creates new news worker
func NewNewsWorker(coordinator *updater.Coordinator) *NewsWorker {
	return &NewsWorker{coordinator: coordinator}
}

// Name returns worker name
func (w *NewsWorker) Name() string { return "news_updater" }

// Run executes one news update cycle
func (w *NewsWorker) Run(ctx context.Context) error {
	_, err := w.coordinator.RunNews(ctx)
	return ignoreBusy(err)
}

// AnalysisWorker runs the fundamentals analysis domain on a schedule
type AnalysisWorker struct {
	coordinator *updater.Coordinator
	reports     ReportRefresher
}

// ReportRefresher regenerates cached reports after fresh analyses
type ReportRefresher interface {
	Refresh(ctx context.Context) error
}

// NewAnalysisWorker creates new analysis worker. reports may be nil.
func NewAnalysisWorker(coordinator *updater.Coordinator, reports ReportRefresher) *AnalysisWorker {
	return &AnalysisWorker{coordinator: coordinator, reports: reports}
}

// Name returns worker name
func (w *AnalysisWorker) Name() string { return "analysis_updater" }

// Run executes one analysis update cycle and refreshes the cached
// reports from the new snapshots
func (w *AnalysisWorker) Run(ctx context.Context) error {
	if _, err := w.coordinator.RunAnalysis(ctx); err != nil {
		return ignoreBusy(err)
	}

	if w.reports != nil {
		return w.reports.Refresh(ctx)
	}

	return nil
}

// CleanupWorker enforces the retention windows
type CleanupWorker struct {
	coordinator *updater.Coordinator
}

// NewCleanupWorker creates new cleanup worker
func NewCleanupWorker(coordinator *updater.Coordinator) *CleanupWorker {
	return &CleanupWorker{coordinator: coordinator}
}

// Name returns worker name
func (w *CleanupWorker) Name() string { return "retention_cleanup" }

// Run executes one cleanup cycle
func (w *CleanupWorker) Run(ctx context.Context) error {
	return w.coordinator.Cleanup(ctx)
}

// ignoreBusy drops the already-running error; an overlapping scheduled
// tick is expected, not a failure
func ignoreBusy(err error) error {
	if errors.Is(err, updater.ErrAlreadyRunning) {
		return nil
	}
	return err
}
