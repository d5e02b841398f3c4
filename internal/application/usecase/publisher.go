package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// publisher avisa al bus de cada mutación. Un fallo al publicar no revierte la escritura:
// se registra y los cachés se reconstruyen en la próxima lectura.
type publisher struct {
	bus ports.EventBus
	log *logger.Logger
}

func newPublisher(bus ports.EventBus, log *logger.Logger) publisher {
	if log == nil {
		log = logger.Nop()
	}
	return publisher{bus: bus, log: log}
}

func (p publisher) publish(ctx context.Context, collection, action, companyID, entityID string) {
	if p.bus == nil {
		return
	}
	e := event.Event{
		Collection: collection,
		CompanyID:  companyID,
		EntityID:   entityID,
		Action:     action,
		At:         time.Now(),
	}
	if collection == event.CollectionProducts {
		e.ProductID = entityID
	}
	if err := p.bus.Publish(ctx, e); err != nil {
		p.log.Warn().Err(err).Str("collection", collection).Str("action", action).Msg("no se pudo publicar el evento")
	}
}

func clampPage(limit, offset int) (int, int) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	return page.Limit, page.Offset
}
