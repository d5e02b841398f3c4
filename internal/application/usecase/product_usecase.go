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
	"github.com/jhoicas/roteiro-api/internal/domain/catalog"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos y el filtro por tipo de atendimento/pessoa.
type ProductUseCase struct {
	repo repository.ProductRepository
	pub  publisher
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, bus ports.EventBus, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create crea un nuevo producto. Sin is_active el producto nace activo.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if err := catalog.ValidateTags(in.AttendanceTypes, in.PersonTypes); err != nil {
		return nil, err
	}
	if err := validateScriptFile(in.ScriptFile); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Name:            name,
		Category:        in.Category,
		ScriptID:        strings.TrimSpace(in.ScriptID),
		ScriptFile:      in.ScriptFile,
		AttendanceTypes: nonNil(in.AttendanceTypes),
		PersonTypes:     nonNil(in.PersonTypes),
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionProducts, event.ActionCreated, companyID, product.ID)
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// Update actualiza los campos presentes. Devuelve (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ScriptID != nil {
		product.ScriptID = strings.TrimSpace(*in.ScriptID)
	}
	if in.ScriptFile != nil {
		if err := validateScriptFile(*in.ScriptFile); err != nil {
			return nil, err
		}
		product.ScriptFile = *in.ScriptFile
	}
	if in.AttendanceTypes != nil {
		product.AttendanceTypes = nonNil(*in.AttendanceTypes)
	}
	if in.PersonTypes != nil {
		product.PersonTypes = nonNil(*in.PersonTypes)
	}
	if err := catalog.ValidateTags(product.AttendanceTypes, product.PersonTypes); err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionProducts, event.ActionUpdated, companyID, product.ID)
	return ToProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Available devuelve los productos activos que aplican a la combinación elegida, en orden del almacén.
func (uc *ProductUseCase) Available(ctx context.Context, companyID, attendanceType, personType string) ([]dto.ProductResponse, error) {
	if err := catalog.ValidateSelection(attendanceType, personType); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	filtered := catalog.FilterProducts(list, attendanceType, personType)
	items := make([]dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID. Los pasos no se borran en cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionProducts, event.ActionDeleted, companyID, id)
	return nil
}

func validateScriptFile(name string) error {
	if name == "" || entity.IsAllowedStepFile(name) {
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrFileNotAllowed, name)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Name:            p.Name,
		Category:        p.Category,
		ScriptID:        p.ScriptID,
		ScriptFile:      p.ScriptFile,
		AttendanceTypes: nonNil(p.AttendanceTypes),
		PersonTypes:     nonNil(p.PersonTypes),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
