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
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	operators *OperatorUseCase
	pub       publisher
}

// NewCompanyUseCase construye el caso de uso. operators es opcional: sin él no se crea el admin inicial.
func NewCompanyUseCase(repo repository.CompanyRepository, operators *OperatorUseCase, bus ports.EventBus, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, operators: operators, pub: newPublisher(bus, log)}
}

// Create crea una nueva empresa con todos los módulos activos y, si se indica, su admin inicial.
// Devuelve domain.ErrDuplicate si el NIT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NIT = strings.TrimSpace(in.NIT)
	if in.Name == "" || in.NIT == "" {
		return nil, fmt.Errorf("%w: name y nit son obligatorios", domain.ErrInvalidInput)
	}
	if (in.AdminUsername == "") != (in.AdminPassword == "") {
		return nil, fmt.Errorf("%w: admin_username y admin_password van juntos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByNIT(ctx, in.NIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		NIT:       in.NIT,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	for _, name := range entity.Modules {
		m := &entity.CompanyModule{CompanyID: company.ID, ModuleName: name, IsActive: true, ActivatedAt: now, UpdatedAt: now}
		if err := uc.repo.SetModule(ctx, m); err != nil {
			return nil, err
		}
	}
	if in.AdminUsername != "" && uc.operators != nil {
		_, err := uc.operators.Create(ctx, company.ID, dto.CreateOperatorRequest{
			Username: in.AdminUsername,
			Password: in.AdminPassword,
			Name:     in.AdminUsername,
			Email:    in.Email,
			Role:     entity.RoleAdmin,
		})
		if err != nil {
			return nil, err
		}
	}
	uc.pub.publish(ctx, event.CollectionCompanies, event.ActionCreated, company.ID, company.ID)
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		NIT:       c.NIT,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
