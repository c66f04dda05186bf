package postgres

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var _ repository.TemperatureReadingRepository = (*TemperatureReadingRepo)(nil)

const tableReadings = "temperature_readings"

var readingTable = tableDef[entity.TemperatureReading]{
	name: tableReadings,
	columns: []string{
		"id", "location_id", "celsius", "recorded_at", "recorded_by", "created_at", "updated_at",
	},
	scan: func(s scanner, r *entity.TemperatureReading) error {
		return s.Scan(&r.ID, &r.LocationID, &r.Celsius, &r.RecordedAt, &r.RecordedBy, &r.CreatedAt, &r.UpdatedAt)
	},
	values: func(r *entity.TemperatureReading) []any {
		return []any{r.ID, r.LocationID, r.Celsius, r.RecordedAt, r.RecordedBy, r.CreatedAt, r.UpdatedAt}
	},
}

// TemperatureReadingRepo implementación de TemperatureReadingRepository sobre PostgreSQL.
// celsius es NUMERIC; el codec de shopspring/decimal se registra en NewPool.
type TemperatureReadingRepo struct {
	crudRepo[entity.TemperatureReading]
}

// NewTemperatureReadingRepository construye el adaptador de lecturas. Pasar pool o tx (Querier).
func NewTemperatureReadingRepository(q Querier) *TemperatureReadingRepo {
	return &TemperatureReadingRepo{crudRepo[entity.TemperatureReading]{q: q, def: readingTable}}
}

func (r *TemperatureReadingRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.TemperatureReading, error) {
	return r.queryList(ctx, "list "+tableReadings,
		r.selectSQL()+" WHERE location_id = $1 ORDER BY recorded_at DESC, id LIMIT $2 OFFSET $3",
		locationID, limit, offset)
}

// LatestByLocations resuelve todas las ubicaciones en una sola consulta con DISTINCT ON.
func (r *TemperatureReadingRepo) LatestByLocations(ctx context.Context, locationIDs []string) (map[string]*entity.TemperatureReading, error) {
	out := make(map[string]*entity.TemperatureReading, len(locationIDs))
	if len(locationIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT DISTINCT ON (location_id) id, location_id, celsius, recorded_at, recorded_by, created_at, updated_at
		FROM temperature_readings
		WHERE location_id = ANY($1)
		ORDER BY location_id, updated_at DESC, created_at DESC`
	list, err := r.queryList(ctx, "latest "+tableReadings, query, locationIDs)
	if err != nil {
		return nil, err
	}
	for _, reading := range list {
		out[reading.LocationID] = reading
	}
	return out, nil
}
