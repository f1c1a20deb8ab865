package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

// TerceroQueries lecturas de terceros.
type TerceroQueries interface {
	List(ctx context.Context, q dto.TerceroQuery) (*dto.PageEnvelope[dto.TerceroListItem], error)
	Get(ctx context.Context, codcli string) (*dto.TerceroResponse, error)
}

// TerceroHandler maneja /terceros.
type TerceroHandler struct {
	uc TerceroQueries
}

// NewTerceroHandler construye el handler.
func NewTerceroHandler(uc TerceroQueries) *TerceroHandler {
	return &TerceroHandler{uc: uc}
}

// List godoc
// @Summary      Listar terceros
// @Tags         terceros
// @Produce      json
// @Param        page      query  int     false  "Página"              default(1)
// @Param        per_page  query  int     false  "5, 10, 15, 20 o 50"  default(10)
// @Param        search    query  string  false  "Código o nombre"
// @Param        codcli    query  string  false  "Código del cliente"
// @Param        nombre    query  string  false  "Nombre del tercero"
// @Success      200  {object}  dto.PageEnvelope[dto.TerceroListItem]
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /terceros [get]
func (h *TerceroHandler) List(c *fiber.Ctx) error {
	q := dto.TerceroQuery{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", entity.DefaultPageSize),
		Search:  c.Query("search"),
		Codcli:  c.Query("codcli"),
		Nombre:  c.Query("nombre"),
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al obtener los terceros: " + err.Error()})
	}
	return c.JSON(out)
}

// Show godoc
// @Summary      Tercero por código
// @Tags         terceros
// @Produce      json
// @Param        codcli  path  string  true  "Código del cliente"
// @Success      200  {object}  dto.TerceroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /terceros/{codcli} [get]
func (h *TerceroHandler) Show(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("codcli"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al obtener los terceros: " + err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Tercero no encontrado"})
	}
	return c.JSON(out)
}
