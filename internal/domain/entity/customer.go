package entity

import "time"

// Customer representa un cliente del taller (solo lectura para validación).
type Customer struct {
	ID             string
	NombreCompleto string
	Email          string
	Telefono       string
	CreatedAt      time.Time
}
