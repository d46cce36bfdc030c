package usecase

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. Nombre, teléfono y email son obligatorios.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &entity.Supplier{
		Name:  clean(in.Name),
		Phone: clean(in.Phone),
		Email: clean(in.Email),
	}
	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// Update fusiona el parche con el proveedor actual.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if v := cleanPtr(in.Name); v != nil {
		supplier.Name = *v
	}
	if v := cleanPtr(in.Phone); v != nil {
		supplier.Phone = *v
	}
	if v := cleanPtr(in.Email); v != nil {
		supplier.Email = *v
	}
	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores por ID ascendente.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Delete elimina un proveedor por ID.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func validateSupplier(s *entity.Supplier) error {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if !validEmail(s.Email) {
		missing = append(missing, "email")
	}
	return domain.NewValidationError(missing...)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:    s.ID,
		Name:  s.Name,
		Phone: s.Phone,
		Email: s.Email,
	}
}
