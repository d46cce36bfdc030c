package dto

// CreateSupplierRequest entrada para crear un proveedor; todos los campos son obligatorios.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// UpdateSupplierRequest parche de proveedor.
type UpdateSupplierRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
