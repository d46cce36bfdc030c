package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// maxPasswordBytes límite de bcrypt; más largo GenerateFromPassword falla.
const maxPasswordBytes = 72

// UserUseCase aplica reglas de negocio para usuarios.
// La contraseña se guarda como hash bcrypt y nunca se devuelve.
type UserUseCase struct {
	repo     repository.UserRepository
	hashCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithHashCost(cost int) *UserUseCase {
	uc.hashCost = cost
	return uc
}

// Create crea un usuario. Nombre, email y password son obligatorios; rol por defecto "empleado".
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &entity.User{
		Name:  clean(in.Name),
		Email: clean(in.Email),
		Role:  clean(in.Role),
	}
	if user.Role == "" {
		user.Role = entity.RoleEmpleado
	}
	var missing []string
	if user.Name == "" {
		missing = append(missing, "name")
	}
	if !validEmail(user.Email) {
		missing = append(missing, "email")
	}
	if in.Password == "" || len(in.Password) > maxPasswordBytes {
		missing = append(missing, "password")
	}
	if !entity.ValidRole(user.Role) {
		missing = append(missing, "role")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// Update fusiona el parche. La contraseña solo cambia si llega un valor no vacío.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if v := cleanPtr(in.Name); v != nil {
		user.Name = *v
	}
	if v := cleanPtr(in.Email); v != nil {
		user.Email = *v
	}
	if v := cleanPtr(in.Role); v != nil {
		user.Role = *v
	}
	var missing []string
	if user.Name == "" {
		missing = append(missing, "name")
	}
	if !validEmail(user.Email) {
		missing = append(missing, "email")
	}
	if in.Password != nil && len(*in.Password) > maxPasswordBytes {
		missing = append(missing, "password")
	}
	if !entity.ValidRole(user.Role) {
		missing = append(missing, "role")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.hashCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios por ID ascendente.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
