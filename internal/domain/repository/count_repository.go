package repository

import "context"

// Tablas del almacenamiento remoto.
const (
	TableProducts    = "products"
	TableBodegas     = "bodegas"
	TableProveedores = "proveedores"
	TableUsuarios    = "usuarios"
	TableVentas      = "ventas"
	TableCompras     = "compras"
)

// CountRepository cuenta filas de una tabla conocida.
type CountRepository interface {
	Count(ctx context.Context, table string) (int64, error)
}
