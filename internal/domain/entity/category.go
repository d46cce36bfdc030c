package entity

// Category representa una categoría de productos. Vive solo en memoria.
type Category struct {
	ID   int64
	Name string
}
