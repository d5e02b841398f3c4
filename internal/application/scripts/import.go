package scripts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// reimportConcurrency productos re-importados en paralelo por familia.
const reimportConcurrency = 4

// ImportUseCase carga pasos desde las familias de archivos JSON hacia los productos.
type ImportUseCase struct {
	products  repository.ProductRepository
	steps     repository.ScriptStepRepository
	source    ports.StepFileSource
	tx        ports.StepTxRunner
	sanitizer ports.ContentSanitizer
	bus       ports.EventBus
	metrics   ports.Metrics
	log       *logger.Logger
}

// NewImportUseCase construye el caso de uso. sanitizer, bus y metrics son opcionales.
// Con WithTx la importación de un producto es atómica.
func NewImportUseCase(
	products repository.ProductRepository,
	steps repository.ScriptStepRepository,
	source ports.StepFileSource,
	sanitizer ports.ContentSanitizer,
	bus ports.EventBus,
	metrics ports.Metrics,
	log *logger.Logger,
) *ImportUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		products:  products,
		steps:     steps,
		source:    source,
		sanitizer: sanitizer,
		bus:       bus,
		metrics:   metrics,
		log:       log.Named("step-import"),
	}
}

// WithTx activa la escritura transaccional de pasos.
func (uc *ImportUseCase) WithTx(tx ports.StepTxRunner) *ImportUseCase {
	uc.tx = tx
	return uc
}

// Import hace upsert de todos los pasos de file en el producto. Con bind el producto queda
// ligado a la familia y se re-importa cuando el archivo cambia.
func (uc *ImportUseCase) Import(ctx context.Context, companyID, productID string, in dto.ImportStepsRequest) (*dto.ImportStepsResponse, error) {
	if !entity.IsAllowedStepFile(in.File) {
		return nil, fmt.Errorf("%w: %q", domain.ErrFileNotAllowed, in.File)
	}
	product, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	templates, err := uc.source.Load(in.File)
	if err != nil {
		return nil, err
	}
	n, err := uc.apply(ctx, product, in.File, templates)
	if err != nil {
		return nil, err
	}
	if in.Bind && product.ScriptFile != in.File {
		product.ScriptFile = in.File
		product.UpdatedAt = time.Now()
		if err := uc.products.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	return &dto.ImportStepsResponse{ProductID: product.ID, File: in.File, Imported: n}, nil
}

// ReimportFamily re-importa file en todos los productos ligados a él (de cualquier tenant).
// Un producto que falla no detiene a los demás; se devuelven todos los errores unidos.
func (uc *ImportUseCase) ReimportFamily(ctx context.Context, file string) (int, error) {
	if !entity.IsAllowedStepFile(file) {
		return 0, fmt.Errorf("%w: %q", domain.ErrFileNotAllowed, file)
	}
	products, err := uc.products.ListByScriptFile(ctx, file)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}
	templates, err := uc.source.Load(file)
	if err != nil {
		return 0, err
	}

	var (
		mu    sync.Mutex
		total int
		errs  []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reimportConcurrency)
	for _, p := range products {
		p := p
		g.Go(func() error {
			n, err := uc.apply(gctx, p, file, templates)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.log.Warn().Err(err).Str("product_id", p.ID).Str("file", file).Msg("re-importación fallida")
				errs = append(errs, fmt.Errorf("producto %s: %w", p.ID, err))
				return nil
			}
			total += n
			return nil
		})
	}
	_ = g.Wait()
	uc.log.Info().Str("file", file).Int("products", len(products)).Int("steps", total).Msg("familia re-importada")
	return total, errors.Join(errs...)
}

// SyncAll re-importa las tres familias; se usa al arrancar.
func (uc *ImportUseCase) SyncAll(ctx context.Context) error {
	var errs []error
	for _, f := range entity.StepFiles {
		if _, err := uc.ReimportFamily(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (uc *ImportUseCase) apply(ctx context.Context, product *entity.Product, file string, templates []entity.ScriptStep) (int, error) {
	now := time.Now()
	write := func(steps repository.ScriptStepRepository) error {
		return uc.write(ctx, steps, product, templates, now)
	}
	var err error
	if uc.tx != nil {
		err = uc.tx.RunSteps(ctx, write)
	} else {
		err = write(uc.steps)
	}
	if err != nil {
		return 0, err
	}
	uc.metrics.StepsImported(file, len(templates))
	if uc.bus != nil {
		e := event.Event{
			Collection: event.CollectionSteps,
			CompanyID:  product.CompanyID,
			ProductID:  product.ID,
			Action:     event.ActionImported,
			At:         now,
		}
		if err := uc.bus.Publish(ctx, e); err != nil {
			uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("no se pudo publicar la importación")
		}
	}
	return len(templates), nil
}

func (uc *ImportUseCase) write(ctx context.Context, steps repository.ScriptStepRepository, product *entity.Product, templates []entity.ScriptStep, now time.Time) error {
	for i := range templates {
		step := templates[i]
		step.CompanyID = product.CompanyID
		step.ProductID = product.ID
		step.UpdatedAt = now
		step.Buttons = append([]entity.Button(nil), templates[i].Buttons...)
		step.Tabulations = append([]entity.StepTabulation(nil), templates[i].Tabulations...)
		if uc.sanitizer != nil {
			step.Content = uc.sanitizer.Sanitize(step.Content)
		}
		if err := steps.Upsert(ctx, &step); err != nil {
			return fmt.Errorf("paso %s: %w", step.ID, err)
		}
	}
	return nil
}
