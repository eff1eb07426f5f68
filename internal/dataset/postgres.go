package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads the two tables from PostgreSQL.
//
// Expected columns (snake_case of the spreadsheet headers):
//
//	flows:      country, year, country_of_origin, inflow, outflow, net_migration
//	indicators: country, year, gdp_per_capita, political_stability,
//	            health_spending_per_capita, conflict_deaths, inflow, outflow
type PostgresSource struct {
	Pool            *pgxpool.Pool
	FlowsTable      string
	IndicatorsTable string
}

// Load runs one SELECT per table.
func (s PostgresSource) Load(ctx context.Context) (*Tables, error) {
	flows, err := s.loadFlows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load flows from %s: %w", s.FlowsTable, err)
	}
	indicators, err := s.loadIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("load indicators from %s: %w", s.IndicatorsTable, err)
	}

	slog.Info("datasets loaded",
		"flows_table", s.FlowsTable,
		"flow_rows", len(flows),
		"indicators_table", s.IndicatorsTable,
		"indicator_rows", len(indicators),
	)

	return &Tables{Flows: flows, Indicators: indicators}, nil
}

func (s PostgresSource) loadFlows(ctx context.Context) ([]FlowRecord, error) {
	query := fmt.Sprintf(`SELECT country, year, country_of_origin,
		COALESCE(inflow, 0), COALESCE(outflow, 0), COALESCE(net_migration, 0)
		FROM %s`, pgx.Identifier{s.FlowsTable}.Sanitize())

	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (FlowRecord, error) {
		var (
			rec  FlowRecord
			year int32
		)
		err := row.Scan(&rec.Country, &year, &rec.Origin, &rec.Inflow, &rec.Outflow, &rec.NetMigration)
		rec.Year = int(year)
		return rec, err
	})
}

func (s PostgresSource) loadIndicators(ctx context.Context) ([]IndicatorRecord, error) {
	query := fmt.Sprintf(`SELECT country, year, gdp_per_capita, political_stability,
		health_spending_per_capita, conflict_deaths, inflow, outflow
		FROM %s`, pgx.Identifier{s.IndicatorsTable}.Sanitize())

	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (IndicatorRecord, error) {
		var rec IndicatorRecord
		var year int32
		var gdp, stability, health, deaths, in, out pgtype.Float8
		if err := row.Scan(&rec.Country, &year, &gdp, &stability, &health, &deaths, &in, &out); err != nil {
			return rec, err
		}
		rec.Year = int(year)
		rec.GDPPerCapita = fromFloat8(gdp)
		rec.PoliticalStability = fromFloat8(stability)
		rec.HealthSpending = fromFloat8(health)
		rec.ConflictDeaths = fromFloat8(deaths)
		rec.Inflow = fromFloat8(in)
		rec.Outflow = fromFloat8(out)
		return rec, nil
	})
}

// fromFloat8 maps SQL NULL to the missing-value marker.
func fromFloat8(f pgtype.Float8) float64 {
	if !f.Valid {
		return Missing()
	}
	return f.Float64
}
