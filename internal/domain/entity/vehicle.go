package entity

import "fmt"

// Vehicle representa un vehículo asociado a un pedido (solo lectura para validación).
type Vehicle struct {
	ID     string
	Marca  string
	Modelo string
	Anio   int
	Placas string
}

// Description compone la descripción corta que se muestra al revisor:
// "<marca> <modelo> <anio> - <placas>".
func (v *Vehicle) Description() string {
	return fmt.Sprintf("%s %s %d - %s", v.Marca, v.Modelo, v.Anio, v.Placas)
}
