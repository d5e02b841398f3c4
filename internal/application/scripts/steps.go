package scripts

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

// StepUseCase CRUD de los pasos de un producto. El contenido HTML se sanea antes de persistir.
type StepUseCase struct {
	products  repository.ProductRepository
	steps     repository.ScriptStepRepository
	sanitizer ports.ContentSanitizer
	bus       ports.EventBus
	log       *logger.Logger
}

// NewStepUseCase construye el caso de uso. sanitizer y bus son opcionales.
func NewStepUseCase(products repository.ProductRepository, steps repository.ScriptStepRepository, sanitizer ports.ContentSanitizer, bus ports.EventBus, log *logger.Logger) *StepUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StepUseCase{products: products, steps: steps, sanitizer: sanitizer, bus: bus, log: log}
}

// Create agrega un paso al producto. Sin ID se genera uno; ID repetido → domain.ErrDuplicate.
func (uc *StepUseCase) Create(ctx context.Context, companyID, productID string, in dto.SaveStepRequest) (*dto.StepResponse, error) {
	if _, err := uc.product(ctx, companyID, productID); err != nil {
		return nil, err
	}
	step, err := uc.build(companyID, productID, in)
	if err != nil {
		return nil, err
	}
	if step.ID == "" {
		step.ID = uuid.New().String()
	}
	existing, err := uc.steps.Get(ctx, productID, step.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: paso %q", domain.ErrDuplicate, step.ID)
	}
	if err := uc.steps.Create(ctx, step); err != nil {
		return nil, err
	}
	uc.publish(ctx, companyID, productID, step.ID, event.ActionCreated)
	return ToStepResponse(step), nil
}

// Get obtiene un paso. (nil, nil) si no existe.
func (uc *StepUseCase) Get(ctx context.Context, companyID, productID, stepID string) (*dto.StepResponse, error) {
	if _, err := uc.product(ctx, companyID, productID); err != nil {
		return nil, err
	}
	s, err := uc.steps.Get(ctx, productID, stepID)
	if err != nil || s == nil {
		return nil, err
	}
	return ToStepResponse(s), nil
}

// List devuelve los pasos del producto en orden del almacén.
func (uc *StepUseCase) List(ctx context.Context, companyID, productID string) (*dto.StepListResponse, error) {
	if _, err := uc.product(ctx, companyID, productID); err != nil {
		return nil, err
	}
	list, err := uc.steps.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StepResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToStepResponse(s))
	}
	return &dto.StepListResponse{Items: items}, nil
}

// Update reemplaza el paso stepID. (nil, nil) si no existe.
func (uc *StepUseCase) Update(ctx context.Context, companyID, productID, stepID string, in dto.SaveStepRequest) (*dto.StepResponse, error) {
	if _, err := uc.product(ctx, companyID, productID); err != nil {
		return nil, err
	}
	existing, err := uc.steps.Get(ctx, productID, stepID)
	if err != nil || existing == nil {
		return nil, err
	}
	in.ID = stepID
	step, err := uc.build(companyID, productID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.steps.Update(ctx, step); err != nil {
		return nil, err
	}
	uc.publish(ctx, companyID, productID, step.ID, event.ActionUpdated)
	return ToStepResponse(step), nil
}

// Delete elimina un paso. Los botones que apuntaban a él quedan colgados; el lint los reporta.
func (uc *StepUseCase) Delete(ctx context.Context, companyID, productID, stepID string) error {
	if _, err := uc.product(ctx, companyID, productID); err != nil {
		return err
	}
	if err := uc.steps.Delete(ctx, productID, stepID); err != nil {
		return err
	}
	uc.publish(ctx, companyID, productID, stepID, event.ActionDeleted)
	return nil
}

func (uc *StepUseCase) product(ctx context.Context, companyID, productID string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (uc *StepUseCase) build(companyID, productID string, in dto.SaveStepRequest) (*entity.ScriptStep, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title es obligatorio", domain.ErrInvalidInput)
	}
	step := &entity.ScriptStep{
		ID:          strings.TrimSpace(in.ID),
		CompanyID:   companyID,
		ProductID:   productID,
		Title:       title,
		Content:     in.Content,
		Buttons:     make([]entity.Button, 0, len(in.Buttons)),
		Tabulations: make([]entity.StepTabulation, 0, len(in.Tabulations)),
		UpdatedAt:   time.Now(),
	}
	if err := validateButtons(in.Buttons); err != nil {
		return nil, err
	}
	for _, b := range in.Buttons {
		step.Buttons = append(step.Buttons, entity.Button{
			ID:         strings.TrimSpace(b.ID),
			Label:      strings.TrimSpace(b.Label),
			Order:      b.Order,
			Primary:    b.Primary,
			NextStepID: normalizeNext(b.NextStepID),
		})
	}
	for _, t := range in.Tabulations {
		step.Tabulations = append(step.Tabulations, entity.StepTabulation(t))
	}
	if uc.sanitizer != nil {
		step.Content = uc.sanitizer.Sanitize(step.Content)
	}
	return step, nil
}

func (uc *StepUseCase) publish(ctx context.Context, companyID, productID, stepID, action string) {
	if uc.bus == nil {
		return
	}
	e := event.Event{
		Collection: event.CollectionSteps,
		CompanyID:  companyID,
		ProductID:  productID,
		EntityID:   stepID,
		Action:     action,
		At:         time.Now(),
	}
	if err := uc.bus.Publish(ctx, e); err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo publicar el cambio de pasos")
	}
}

func validateButtons(buttons []dto.ButtonDTO) error {
	seen := make(map[string]struct{}, len(buttons))
	for _, b := range buttons {
		id := strings.TrimSpace(b.ID)
		if id == "" || strings.TrimSpace(b.Label) == "" {
			return fmt.Errorf("%w: los botones requieren id y label", domain.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: botón %q repetido", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// normalizeNext trata "" igual que null: fin del roteiro.
func normalizeNext(next *string) *string {
	if next == nil {
		return nil
	}
	v := strings.TrimSpace(*next)
	if v == "" {
		return nil
	}
	return &v
}

// ToStepResponse convierte el paso a DTO con los botones en orden de presentación.
func ToStepResponse(s *entity.ScriptStep) *dto.StepResponse {
	if s == nil {
		return nil
	}
	sorted := s.SortedButtons()
	buttons := make([]dto.ButtonDTO, 0, len(sorted))
	for _, b := range sorted {
		buttons = append(buttons, dto.ButtonDTO(b))
	}
	tabs := make([]dto.StepTabulationDTO, 0, len(s.Tabulations))
	for _, t := range s.Tabulations {
		tabs = append(tabs, dto.StepTabulationDTO(t))
	}
	return &dto.StepResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		Title:       s.Title,
		Content:     s.Content,
		Buttons:     buttons,
		Tabulations: tabs,
		UpdatedAt:   s.UpdatedAt,
	}
}
