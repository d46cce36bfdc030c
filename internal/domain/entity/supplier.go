package entity

// Supplier representa un proveedor (tabla proveedores).
type Supplier struct {
	ID    int64
	Name  string
	Phone string
	Email string
}
