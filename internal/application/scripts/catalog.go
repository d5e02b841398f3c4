// Package scripts reúne los casos de uso sobre los roteiros: caché de lectura para la navegación,
// CRUD de pasos, importación desde archivos, lint y exportación a PDF.
package scripts

import (
	"context"
	"sync"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"golang.org/x/sync/singleflight"
)

type snapshot struct {
	companyID string
	steps     []*entity.ScriptStep
	byID      map[string]*entity.ScriptStep
}

// Catalog caché de productos y pasos para la navegación. Cada producto se carga completo
// la primera vez que se lee y se descarta cuando el bus avisa un cambio en su colección.
type Catalog struct {
	products repository.ProductRepository
	steps    repository.ScriptStepRepository

	mu        sync.RWMutex
	snapshots map[string]*snapshot      // por productID
	productsC map[string]*entity.Product // por productID
	gen       uint64                     // se incrementa en cada invalidación
	group     singleflight.Group

	unsubscribe func()
}

var _ navigation.Catalog = (*Catalog)(nil)

// NewCatalog construye la caché y, si bus no es nil, se suscribe a las invalidaciones.
func NewCatalog(products repository.ProductRepository, steps repository.ScriptStepRepository, bus ports.EventBus) *Catalog {
	c := &Catalog{
		products:  products,
		steps:     steps,
		snapshots: make(map[string]*snapshot),
		productsC: make(map[string]*entity.Product),
	}
	if bus != nil {
		c.unsubscribe = bus.Subscribe(c.onEvent)
	}
	return c
}

// Close da de baja la suscripción al bus.
func (c *Catalog) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Product devuelve el producto del tenant o (nil, nil).
func (c *Catalog) Product(ctx context.Context, companyID, productID string) (*entity.Product, error) {
	c.mu.RLock()
	p, ok := c.productsC[productID]
	c.mu.RUnlock()
	if ok {
		if p.CompanyID != companyID {
			return nil, nil
		}
		return p, nil
	}
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()
	p, err := c.products.GetByID(ctx, companyID, productID)
	if err != nil || p == nil {
		return nil, err
	}
	c.mu.Lock()
	if c.gen == gen {
		c.productsC[productID] = p
	}
	c.mu.Unlock()
	return p, nil
}

// Step devuelve un paso del producto o (nil, nil).
func (c *Catalog) Step(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error) {
	snap, err := c.snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}
	return snap.byID[stepID], nil
}

// Steps devuelve los pasos del producto en orden del almacén.
func (c *Catalog) Steps(ctx context.Context, productID string) ([]*entity.ScriptStep, error) {
	snap, err := c.snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.ScriptStep, len(snap.steps))
	copy(out, snap.steps)
	return out, nil
}

// Invalidate descarta lo cacheado de un producto.
func (c *Catalog) Invalidate(productID string) {
	c.mu.Lock()
	c.gen++
	delete(c.snapshots, productID)
	delete(c.productsC, productID)
	c.mu.Unlock()
	c.group.Forget(productID)
}

// InvalidateCompany descarta todo lo cacheado de un tenant.
func (c *Catalog) InvalidateCompany(companyID string) {
	c.mu.Lock()
	c.gen++
	for id, s := range c.snapshots {
		if s.companyID == companyID || companyID == "" {
			delete(c.snapshots, id)
			c.group.Forget(id)
		}
	}
	for id, p := range c.productsC {
		if p.CompanyID == companyID || companyID == "" {
			delete(c.productsC, id)
		}
	}
	c.mu.Unlock()
}

func (c *Catalog) onEvent(_ context.Context, e event.Event) {
	switch e.Collection {
	case event.CollectionProducts, event.CollectionSteps:
		if e.ProductID != "" {
			c.Invalidate(e.ProductID)
			return
		}
		c.InvalidateCompany(e.CompanyID)
	case event.CollectionCompanies:
		c.InvalidateCompany(e.CompanyID)
	}
}

func (c *Catalog) snapshot(ctx context.Context, productID string) (*snapshot, error) {
	c.mu.RLock()
	snap, ok := c.snapshots[productID]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		return snap, nil
	}
	v, err, _ := c.group.Do(productID, func() (interface{}, error) {
		list, err := c.steps.ListByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		s := &snapshot{steps: list, byID: make(map[string]*entity.ScriptStep, len(list))}
		for _, st := range list {
			if st == nil {
				continue
			}
			if s.companyID == "" {
				s.companyID = st.CompanyID
			}
			if _, dup := s.byID[st.ID]; !dup {
				s.byID[st.ID] = st
			}
		}
		c.mu.Lock()
		if c.gen == gen {
			c.snapshots[productID] = s
		}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}
