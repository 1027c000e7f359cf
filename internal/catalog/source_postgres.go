package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fairweather/internal/types"
)

// DBTX is the minimal interface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Schema is the DDL for the activities table read by PostgresSource.
const Schema = `
CREATE TABLE IF NOT EXISTS activities (
    id                  TEXT PRIMARY KEY,
    name                TEXT NOT NULL,
    category            TEXT NOT NULL DEFAULT '',
    secondary_category  TEXT NOT NULL DEFAULT '',
    weather_sensitive   BOOLEAN NOT NULL DEFAULT TRUE,
    tags                TEXT[] NOT NULL DEFAULT '{}',
    poor_conditions     TEXT[] NOT NULL DEFAULT '{}',
    good_conditions     TEXT[] NOT NULL DEFAULT '{}',
    perfect_conditions  TEXT[] NOT NULL DEFAULT '{}',
    indoor_alternative  TEXT,
    seasonal_months     INT[],
    sort_order          INT NOT NULL DEFAULT 0,
    enabled             BOOLEAN NOT NULL DEFAULT TRUE
);`

const selectActivities = `
SELECT id, name, category, secondary_category, weather_sensitive,
       tags, poor_conditions, good_conditions, perfect_conditions,
       indoor_alternative, seasonal_months
FROM activities
WHERE enabled
ORDER BY sort_order, id`

// PostgresSource reads the catalog from the activities table.
type PostgresSource struct {
	db DBTX
}

// NewPostgresSource creates a PostgresSource backed by the given connection.
func NewPostgresSource(db DBTX) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name implements Source.
func (s *PostgresSource) Name() string { return "postgres" }

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]types.ActivityDefinition, error) {
	rows, err := s.db.Query(ctx, selectActivities)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query activities", err)
	}
	defer rows.Close()

	var defs []types.ActivityDefinition
	for rows.Next() {
		var (
			def    types.ActivityDefinition
			alt    *string
			months []int32
		)
		if err := rows.Scan(
			&def.ID,
			&def.Name,
			&def.Category,
			&def.SecondaryCategory,
			&def.WeatherSensitive,
			&def.Tags,
			&def.PoorConditions,
			&def.GoodConditions,
			&def.PerfectConditions,
			&alt,
			&months,
		); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan activity row", err)
		}
		if alt != nil {
			def.IndoorAlternative = *alt
		}
		for _, m := range months {
			def.SeasonalMonths = append(def.SeasonalMonths, int(m))
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "error iterating activity rows", err)
	}
	return defs, nil
}
