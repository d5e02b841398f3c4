package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/authz"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// OperatorUseCase CRUD de operadores y administradores de una empresa.
type OperatorUseCase struct {
	repo repository.UserRepository
	pub  publisher
}

// NewOperatorUseCase construye el caso de uso.
func NewOperatorUseCase(repo repository.UserRepository, bus ports.EventBus, log *logger.Logger) *OperatorUseCase {
	return &OperatorUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create registra un usuario: valida rol y capacidades, hashea el password con bcrypt.
// Devuelve domain.ErrUsernameTaken si el username ya existe en la empresa.
func (uc *OperatorUseCase) Create(ctx context.Context, companyID string, in dto.CreateOperatorRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: username, password y name son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	caps, err := normalizeCapabilities(in.Capabilities)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByUsername(ctx, companyID, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Capabilities: caps,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionUsers, event.ActionCreated, companyID, user.ID)
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *OperatorUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || u == nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Update modifica los campos presentes. Devuelve (nil, nil) si el usuario no existe.
func (uc *OperatorUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateOperatorRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || u == nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != entity.UserActive && *in.Status != entity.UserInactive {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		u.Status = *in.Status
	}
	if in.Capabilities != nil {
		caps, err := normalizeCapabilities(*in.Capabilities)
		if err != nil {
			return nil, err
		}
		u.Capabilities = caps
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionUsers, event.ActionUpdated, companyID, u.ID)
	return ToUserResponse(u), nil
}

// List lista usuarios de la empresa con paginación.
func (uc *OperatorUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.UserListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un usuario. Un usuario no puede borrarse a sí mismo.
func (uc *OperatorUseCase) Delete(ctx context.Context, companyID, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionUsers, event.ActionDeleted, companyID, id)
	return nil
}

// normalizeCapabilities valida los nombres y los devuelve ordenados; vacío = política del rol.
func normalizeCapabilities(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set, err := authz.ParseSet(names)
	if err != nil {
		return nil, err
	}
	return set.Names(), nil
}

// ToUserResponse convierte la entidad a DTO incluyendo las capacidades efectivas.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	caps := []string{}
	if set, err := authz.Effective(u); err == nil {
		caps = set.Names()
	}
	return &dto.UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Capabilities: caps,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
