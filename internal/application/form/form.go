// Package form modela el formulario de alta/edición de las vistas de entidades:
// el mismo formulario crea registros nuevos o actualiza el seleccionado.
// Es el contrato de estado del cliente: la API HTTP no guarda formularios, el cliente
// mantiene un Form por vista y envía Submit contra los casos de uso (Ops).
package form

import "context"

// Mode estado del formulario.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Form valores en curso de un formulario de tipo F.
type Form[F any] struct {
	values    F
	editingID int64
	editing   bool
}

// New crea un formulario vacío en modo alta.
func New[F any]() *Form[F] {
	return &Form[F]{}
}

// Values devuelve los valores en curso.
func (f *Form[F]) Values() F { return f.values }

// Set reemplaza los valores en curso sin cambiar de modo.
func (f *Form[F]) Set(values F) { f.values = values }

// Edit entra en modo edición del registro id, precargando sus valores actuales.
func (f *Form[F]) Edit(id int64, current F) {
	f.values = current
	f.editingID = id
	f.editing = true
}

// Cancel limpia el formulario y vuelve a modo alta sin llamar a nada.
func (f *Form[F]) Cancel() {
	var zero F
	f.values = zero
	f.editingID = 0
	f.editing = false
}

// Mode indica si el formulario crea o edita.
func (f *Form[F]) Mode() Mode {
	if f.editing {
		return ModeEdit
	}
	return ModeCreate
}

// EditingID ID del registro en edición; 0 en modo alta.
func (f *Form[F]) EditingID() int64 { return f.editingID }

// Ops operaciones de persistencia que usa Submit.
type Ops[F any] struct {
	Create func(ctx context.Context, values F) error
	Update func(ctx context.Context, id int64, values F) error
}

// Submit crea o actualiza según el modo. Si la operación tiene éxito el formulario
// se limpia y sale de edición; si falla conserva los valores para reintentar.
func Submit[F any](ctx context.Context, f *Form[F], ops Ops[F]) error {
	var err error
	if f.editing {
		err = ops.Update(ctx, f.editingID, f.values)
	} else {
		err = ops.Create(ctx, f.values)
	}
	if err != nil {
		return err
	}
	f.Cancel()
	return nil
}
