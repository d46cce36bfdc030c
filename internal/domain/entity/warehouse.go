package entity

// Warehouse representa una bodega (tabla bodegas).
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
