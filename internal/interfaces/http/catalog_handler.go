package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// catalogService CRUD por tenant de tabulaciones, situaciones y canales.
type catalogService[Req, Resp, List any] interface {
	Create(ctx context.Context, companyID string, in Req) (*Resp, error)
	GetByID(ctx context.Context, companyID, id string) (*Resp, error)
	Update(ctx context.Context, companyID, id string, in Req) (*Resp, error)
	List(ctx context.Context, companyID string, limit, offset int) (*List, error)
	Delete(ctx context.Context, companyID, id string) error
}

// CatalogHandler handler genérico de los catálogos de apoyo a la atención.
type CatalogHandler[Req, Resp, List any] struct {
	svc      catalogService[Req, Resp, List]
	notFound string
}

// NewCatalogHandler construye el handler; notFound es el mensaje del 404.
func NewCatalogHandler[Req, Resp, List any](svc catalogService[Req, Resp, List], notFound string) *CatalogHandler[Req, Resp, List] {
	return &CatalogHandler[Req, Resp, List]{svc: svc, notFound: notFound}
}

// Register monta las rutas CRUD en r.
func (h *CatalogHandler[Req, Resp, List]) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CatalogHandler[Req, Resp, List]) Create(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler[Req, Resp, List]) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, h.notFound)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp, List]) Update(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, h.notFound)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp, List]) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.svc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp, List]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
