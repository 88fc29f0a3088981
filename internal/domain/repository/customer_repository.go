package repository

import (
	"context"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura de clientes (enriquecimiento).
type CustomerRepository interface {
	// GetByID devuelve (nil, nil) si el cliente no existe (lookup best-effort).
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
