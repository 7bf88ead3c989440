// Package fetch provides ready-made Fetcher implementations for the
// statline engine.
package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/table"
)

// DuckDBConfig configures a DuckDB-backed fetcher.
type DuckDBConfig struct {
	// Path is the database file. Empty opens an in-memory database.
	Path string

	// Relations maps dataset ids to the relation (table or view) holding
	// that dataset's rows.
	// REQUIRED: a Fetch for an unmapped dataset fails.
	Relations map[string]string

	// DateColumns overrides the date column per dataset for translating
	// DateFrom/DateTo bounds.
	// OPTIONAL: Defaults to GAME_DATE.
	DateColumns map[string]string

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// DuckDB fetches dataset rows from a DuckDB database. It translates the
// translatable pushdown parameters (Season, SeasonType, DateFrom, DateTo)
// into a WHERE clause and ignores the rest; PerMode and LastNGames have no
// relational meaning here and remain the engine's concern. Over-fetching
// is always safe because the engine's post-mask re-filters.
type DuckDB struct {
	db          *sql.DB
	relations   map[string]string
	dateColumns map[string]string
	logger      *slog.Logger
}

// OpenDuckDB opens the database and validates the configuration.
func OpenDuckDB(cfg DuckDBConfig) (*DuckDB, error) {
	if len(cfg.Relations) == 0 {
		return nil, fmt.Errorf("fetch: at least one dataset relation is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("fetch: open duckdb %q: %w", cfg.Path, err)
	}

	return &DuckDB{
		db:          db,
		relations:   cfg.Relations,
		dateColumns: cfg.DateColumns,
		logger:      logger,
	}, nil
}

// Close releases the database handle.
func (d *DuckDB) Close() error {
	return d.db.Close()
}

// Fetch implements statline.Fetcher.
func (d *DuckDB) Fetch(ctx context.Context, datasetID string, pushdown filter.Pushdown) (*table.Table, error) {
	relation, ok := d.relations[datasetID]
	if !ok {
		return nil, fmt.Errorf("fetch: no relation mapped for dataset %q", datasetID)
	}

	query, args, err := d.buildQuery(datasetID, relation, pushdown)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("duckdb fetch",
		"dataset", datasetID,
		"relation", relation,
		"query", query,
		"args", args,
	)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch: query %q: %w", relation, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// pushdownDateLayout is the format of DateFrom/DateTo pushdown values.
const pushdownDateLayout = "01/02/2006"

// buildQuery translates pushdown parameters into a parameterized SELECT.
func (d *DuckDB) buildQuery(datasetID, relation string, pushdown filter.Pushdown) (string, []any, error) {
	var (
		conds []string
		args  []any
	)

	if season, ok := pushdown[filter.ParamSeason].(string); ok {
		conds = append(conds, quoteIdentifier("SEASON")+" = ?")
		args = append(args, season)
	}
	if seasonType, ok := pushdown[filter.ParamSeasonType].(string); ok {
		conds = append(conds, quoteIdentifier("SEASON_TYPE")+" = ?")
		args = append(args, seasonType)
	}

	dateColumn := d.dateColumns[datasetID]
	if dateColumn == "" {
		dateColumn = "GAME_DATE"
	}
	if from, ok := pushdown[filter.ParamDateFrom].(string); ok {
		iso, err := isoDate(from)
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, quoteIdentifier(dateColumn)+" >= ?")
		args = append(args, iso)
	}
	if to, ok := pushdown[filter.ParamDateTo].(string); ok {
		iso, err := isoDate(to)
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, quoteIdentifier(dateColumn)+" <= ?")
		args = append(args, iso)
	}

	query := "SELECT * FROM " + quoteIdentifier(relation)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query, args, nil
}

// isoDate converts a pushdown date bound to DuckDB's DATE literal form.
func isoDate(s string) (string, error) {
	ts, err := time.Parse(pushdownDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("fetch: bad date bound %q: %w", s, err)
	}
	return ts.Format("2006-01-02"), nil
}

// scanRows drains a result set into a table.
func scanRows(rows *sql.Rows) (*table.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("fetch: read columns: %w", err)
	}

	tbl := table.New(columns...)
	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("fetch: scan row: %w", err)
		}
		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeCell(values[i])
		}
		tbl.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch: iterate rows: %w", err)
	}
	return tbl, nil
}

// normalizeCell converts driver-specific cell types to the table package's
// coercible forms.
func normalizeCell(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	default:
		return v
	}
}
