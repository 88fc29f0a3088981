package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrCascadeStale: la factura quedó aprobada o eliminada correctamente,
	// pero el recálculo de la bandera del pedido falló. El estado por factura
	// es correcto; solo la bandera agregada del pedido puede estar desactualizada.
	// Se repara reintentando el recálculo, no reprocesando la factura.
	ErrCascadeStale = errors.New("bandera de validación del pedido desactualizada")
)
