package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-manager/core/metrics"
	"inventory-manager/core/tables"
	"inventory-manager/feature/inventory/matcher"
	"inventory-manager/feature/inventory/merge"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/report"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrItemNotFound is returned by Item for an unknown id.
	ErrItemNotFound = errors.New("item not found")
	// ErrReportNotFound is returned by Report for an unknown report name.
	ErrReportNotFound = errors.New("report not found")
	// ErrNoSink is returned by WriteReports when no sink is configured.
	ErrNoSink = errors.New("no report sink configured")
)

// Pruner removes published reports that are no longer produced.
type Pruner interface {
	Prune(ctx context.Context, keep []string) ([]string, error)
}

// Service builds the inventory and answers reports, queries and lookups.
type Service struct {
	source  tables.Source
	sink    tables.Sink
	pruner  Pruner
	tables  tables.Set
	logger  *zap.Logger
	metrics *metrics.Registry
	now     func() time.Time
	holder  snapshotHolder
}

// Option configures a Service.
type Option func(*Service)

// WithSink sets where WriteReports writes.
func WithSink(sink tables.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithPruner removes stale reports after every successful WriteReports.
func WithPruner(p Pruner) Option {
	return func(s *Service) { s.pruner = p }
}

// WithMetrics records builds, reports and queries on reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Service) { s.metrics = reg }
}

// WithClock overrides the time used for service date comparisons.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service reading the tables in set from source.
func NewService(source tables.Source, set tables.Set, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		source: source,
		tables: set,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the time used for service date comparisons.
func (s *Service) Now() time.Time {
	return s.now()
}

// Build loads the three tables concurrently and merges them. The result is
// not installed; use Reload for that.
func (s *Service) Build(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	var manufacturerRows, priceRows, serviceDateRows [][]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		manufacturerRows, err = s.source.Rows(gctx, s.tables.Manufacturers)
		return err
	})
	g.Go(func() (err error) {
		priceRows, err = s.source.Rows(gctx, s.tables.Prices)
		return err
	})
	g.Go(func() (err error) {
		serviceDateRows, err = s.source.Rows(gctx, s.tables.ServiceDates)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load inventory tables from %s: %w", s.source.Name(), err)
	}

	store, stats, err := merge.Merge(manufacturerRows, priceRows, serviceDateRows)
	if err != nil {
		return nil, fmt.Errorf("failed to merge inventory tables: %w", err)
	}

	snap := &Snapshot{Store: store, Stats: stats, Built: s.now(), Source: s.source.Name()}

	s.logger.Info("Inventory built",
		zap.String("source", snap.Source),
		zap.Int("records", stats.Records),
		zap.Int("prices_dropped", stats.PricesDropped),
		zap.Int("service_dates_dropped", stats.ServiceDatesDropped),
		zap.Duration("took", time.Since(start)),
	)
	if s.metrics != nil {
		s.metrics.ObserveBuild(stats.Records, snap.Built, time.Since(start))
		s.metrics.ObserveDropped(merge.TablePrices, stats.PricesDropped)
		s.metrics.ObserveDropped(merge.TableServiceDates, stats.ServiceDatesDropped)
	}
	return snap, nil
}

// Reload rebuilds the inventory and installs it. Concurrent calls share one
// build. On failure the previous snapshot stays current.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	snap, shared, err := s.holder.reload(ctx, s.Build)
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Reload coalesced with a concurrent build")
	}
	return snap, nil
}

// Snapshot returns the current inventory, building it on first use.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.holder.getOrLoad(ctx, s.Build)
}

// Reports generates every report from the current snapshot.
func (s *Service) Reports(ctx context.Context) ([]report.Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.Generate(snap.Store, s.now())
}

// Report returns one report by file name.
func (s *Service) Report(ctx context.Context, name string) (report.Report, error) {
	reports, err := s.Reports(ctx)
	if err != nil {
		return report.Report{}, err
	}
	for _, r := range reports {
		if r.Name == name {
			return r, nil
		}
	}
	return report.Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, name)
}

// WriteReports generates every report and writes them to the sink in
// parallel. Nothing is pruned when any write fails.
func (s *Service) WriteReports(ctx context.Context) ([]report.Report, error) {
	if s.sink == nil {
		return nil, ErrNoSink
	}
	reports, err := s.Reports(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range reports {
		g.Go(func() error {
			if err := s.sink.Write(gctx, r.Name, r.Lines); err != nil {
				return fmt.Errorf("failed to write report %s: %w", r.Name, err)
			}
			if s.metrics != nil {
				s.metrics.ObserveReport(r.Name, len(r.Lines))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(reports))
	for _, r := range reports {
		names = append(names, r.Name)
	}
	s.logger.Info("Reports written", zap.String("sink", s.sink.Name()), zap.Strings("reports", names))

	if s.pruner != nil {
		removed, err := s.pruner.Prune(ctx, names)
		if err != nil {
			return reports, fmt.Errorf("failed to prune stale reports: %w", err)
		}
		if len(removed) > 0 {
			s.logger.Info("Pruned stale reports", zap.Strings("removed", removed))
		}
	}
	return reports, nil
}

// Query runs the matcher for one line of user input. Every user-facing
// failure satisfies matcher.IsNoSuchItem.
func (s *Service) Query(ctx context.Context, text string) (matcher.Result, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return matcher.Result{}, err
	}
	res, err := matcher.Process(text, snap.Store, s.now())
	outcome := matcher.Outcome(err)
	if s.metrics != nil {
		s.metrics.ObserveQuery(outcome)
	}
	s.logger.Debug("Query processed", zap.String("query", text), zap.String("outcome", outcome))
	return res, err
}

// Item returns the merged record for id.
func (s *Service) Item(ctx context.Context, id string) (models.Record, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Record{}, err
	}
	rec, ok := snap.Store.Get(id)
	if !ok {
		return models.Record{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return rec, nil
}

// Items returns every record in manufacturer-table order.
func (s *Service) Items(ctx context.Context) ([]models.Record, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Store.Records(), nil
}
