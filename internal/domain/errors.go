package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: ErrInvalidInput (validación, se detecta antes de escribir), ErrNotFound
// (recurso referenciado inexistente), ErrConflict (el estado actual impide la operación, p. ej.
// borrar una ubicación que aún guarda dosis) y ErrPersistence (fallo del almacén después de
// validar; la transacción completa se revierte).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrPersistence  = errors.New("error de persistencia")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de validación específicos del ledger. Todos envuelven ErrInvalidInput.
var (
	ErrInvalidQuantity   = fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidInput)
	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrInvalidInput)
	ErrSameLocation      = fmt.Errorf("%w: origen y destino son la misma ubicación", ErrInvalidInput)
	ErrInvalidExpiry     = fmt.Errorf("%w: vencimiento debe tener formato dd/mm/aaaa", ErrInvalidInput)
)

// Persistence envuelve un error del almacén como ErrPersistence conservando la causa.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// Conflict envuelve una violación de restricción referencial como ErrConflict conservando la causa.
func Conflict(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
}
