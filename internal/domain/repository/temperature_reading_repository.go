package repository

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// TemperatureReadingRepository define el puerto para el registro de temperaturas.
type TemperatureReadingRepository interface {
	Repository[entity.TemperatureReading]
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.TemperatureReading, error)
	// LatestByLocations devuelve, por cada ubicación con al menos una lectura, la de updated_at
	// más reciente. Las ubicaciones sin lecturas no aparecen en el mapa.
	LatestByLocations(ctx context.Context, locationIDs []string) (map[string]*entity.TemperatureReading, error)
}
