package repository

import (
	"context"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
)

// VehicleRepository define el puerto de lectura de vehículos (enriquecimiento).
type VehicleRepository interface {
	// GetByID devuelve (nil, nil) si el vehículo no existe (lookup best-effort).
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
}
