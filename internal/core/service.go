package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/dataset"
	"github.com/JonMunkholm/migdash/internal/logging"
)

// Service is the entry point the web layer and the CLI use. It owns the
// current snapshot and the display options.
type Service struct {
	opts Options

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService creates a Service serving snap.
func NewService(snap *Snapshot, opts Options) *Service {
	if opts.Panels == nil {
		opts.Panels = DefaultPanels()
	}
	return &Service{opts: opts, snap: snap}
}

// Load reads both tables from src and builds a Service around them.
func Load(ctx context.Context, src dataset.Source, opts Options) (*Service, error) {
	snap, err := loadSnapshot(ctx, src)
	if err != nil {
		return nil, err
	}
	return NewService(snap, opts), nil
}

func loadSnapshot(ctx context.Context, src dataset.Source) (*Snapshot, error) {
	start := time.Now()
	tables, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	snap := NewSnapshot(tables)

	logging.FromContext(ctx).Info("snapshot built",
		"flows", len(tables.Flows),
		"indicators", len(tables.Indicators),
		"countries", len(snap.Countries()),
		"summary_rows", len(snap.Summary()),
		"duration", time.Since(start),
	)
	return snap, nil
}

// Reload replaces the snapshot with a fresh load from src. On error the
// current snapshot stays in place.
func (s *Service) Reload(ctx context.Context, src dataset.Source) error {
	snap, err := loadSnapshot(ctx, src)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the snapshot currently served.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Options returns the display options.
func (s *Service) Options() Options { return s.opts }

// Countries returns the selectable countries.
func (s *Service) Countries() []string { return s.Snapshot().Countries() }

// YearBounds returns the slider bounds.
func (s *Service) YearBounds() (lo, hi int) { return s.opts.YearMin, s.opts.YearMax }

// Years returns the distinct years of the flow table, ascending.
func (s *Service) Years() []int { return s.Snapshot().MapYears() }

// Variables returns the selectable map variables in display order.
func (s *Service) Variables() []MigrationVariable { return Variables }

// DefaultSelection returns the selection a new session starts with.
func (s *Service) DefaultSelection() Selection {
	return DefaultSelection(s.Snapshot(), s.opts)
}

// Validate checks sel against the current snapshot.
func (s *Service) Validate(sel Selection) error {
	return ValidateSelection(s.Snapshot(), s.opts, sel)
}

// View recomputes every view for sel.
func (s *Service) View(ctx context.Context, sel Selection) (ViewModel, error) {
	start := time.Now()
	vm, err := Render(s.Snapshot(), sel, s.opts)
	if err != nil {
		return ViewModel{}, err
	}
	logging.WithSelection(ctx, sel.Country, sel.Year, string(sel.Variable)).
		Debug("view computed", "duration", time.Since(start))
	return vm, nil
}

// Summary returns the text boxes for sel.
func (s *Service) Summary(sel Selection) (Summary, error) {
	snap := s.Snapshot()
	if err := ValidateSelection(snap, s.opts, sel); err != nil {
		return Summary{}, err
	}
	return SummaryView(snap, sel), nil
}

// Choropleth returns the world map for v, which may be in any spelling
// accepted by [ParseMigrationVariable]. It does not depend on the country
// or year.
func (s *Service) Choropleth(v MigrationVariable) (chart.Figure, error) {
	canonical, err := ParseMigrationVariable(string(v))
	if err != nil {
		return chart.Figure{}, err
	}
	return Choropleth(s.Snapshot(), canonical), nil
}

// Panel returns one named chart for sel.
func (s *Service) Panel(ctx context.Context, sel Selection, name string) (chart.Figure, error) {
	fig, err := RenderPanel(s.Snapshot(), sel, s.opts, name)
	if err != nil {
		return chart.Figure{}, err
	}
	logging.WithSelection(ctx, sel.Country, sel.Year, string(sel.Variable)).
		Debug("panel computed", "panel", name)
	return fig, nil
}

// TopOriginLists returns the top inflow and outflow origin rows for sel.
func (s *Service) TopOriginLists(sel Selection) (in, out []dataset.FlowRecord, err error) {
	snap := s.Snapshot()
	if err := ValidateSelection(snap, s.opts, sel); err != nil {
		return nil, nil, err
	}
	rows := snap.flowsFor(sel.Country, sel.Year)
	return TopOrigins(rows, inflowOf, topOriginCount), TopOrigins(rows, outflowOf, topOriginCount), nil
}
