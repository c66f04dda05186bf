package repository

import "context"

// Repository define las operaciones de persistencia comunes a todas las entidades.
// Cada backend lo implementa una sola vez de forma genérica; los puertos específicos
// lo embeben y agregan sus consultas.
//
// GetByID devuelve (nil, nil) si el registro no existe.
type Repository[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id string) error
}
