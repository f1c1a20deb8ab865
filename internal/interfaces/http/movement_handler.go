package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MovementCommands escritura de movimientos y emisión de consecutivos.
type MovementCommands interface {
	CreateMovimiento(ctx context.Context, actor entity.Actor, in dto.CreateMovimientoRequest) (*dto.MovimientoCreatedResponse, error)
	GetConsecutivo(ctx context.Context) (*dto.ConsecutivoResponse, error)
}

// MovementQueries lecturas de movimientos.
type MovementQueries interface {
	List(ctx context.Context, q dto.MovimientoQuery) (*dto.PageEnvelope[dto.MovimientoListItem], error)
	Detail(ctx context.Context, docto string) (*dto.MovimientoDetailResponse, error)
	VoucherPDF(ctx context.Context, docto string) ([]byte, string, error)
	Export(ctx context.Context, q dto.MovimientoQuery) ([]byte, string, error)
}

// MovementHandler maneja /movimientos.
type MovementHandler struct {
	commands  MovementCommands
	queries   MovementQueries
	validator *RequestValidator
}

// NewMovementHandler construye el handler.
func NewMovementHandler(commands MovementCommands, queries MovementQueries, validator *RequestValidator) *MovementHandler {
	if validator == nil {
		validator = NewRequestValidator()
	}
	return &MovementHandler{commands: commands, queries: queries, validator: validator}
}

func movimientoQuery(c *fiber.Ctx) dto.MovimientoQuery {
	return dto.MovimientoQuery{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", entity.DefaultPageSize),
		Search:  c.Query("search"),
		Docto:   c.Query("docto"),
	}
}

// List godoc
// @Summary      Listar movimientos de cilindros
// @Tags         movimientos
// @Produce      json
// @Param        page      query  int     false  "Página"             default(1)
// @Param        per_page  query  int     false  "10, 15 o 20"        default(10)
// @Param        search    query  string  false  "Texto en el documento"
// @Param        docto     query  string  false  "Texto en el documento (prioridad sobre search)"
// @Success      200  {object}  dto.PageEnvelope[dto.MovimientoListItem]
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.List(c.UserContext(), movimientoQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al obtener los movimientos: " + err.Error()})
	}
	return c.JSON(out)
}

// Show godoc
// @Summary      Detalle de un movimiento
// @Tags         movimientos
// @Produce      json
// @Param        docto  path  string  true  "Número de documento"
// @Success      200  {object}  dto.MovimientoDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /movimientos/{docto} [get]
func (h *MovementHandler) Show(c *fiber.Ctx) error {
	out, err := h.queries.Detail(c.UserContext(), c.Params("docto"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al obtener los movimientos: " + err.Error()})
	}
	return c.JSON(out)
}

// Store godoc
// @Summary      Registrar ingreso de cilindros
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovimientoRequest  true  "Cabecera y cilindros"
// @Success      201  {object}  dto.ActionResponse
// @Failure      422  {object}  dto.ActionResponse
// @Failure      500  {object}  dto.ActionResponse
// @Router       /movimientos [post]
func (h *MovementHandler) Store(c *fiber.Ctx) error {
	var in dto.CreateMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ActionResponse{
			Message: "Los datos enviados no son válidos",
			Errors:  map[string][]string{"body": {"El cuerpo de la solicitud no es JSON válido"}},
		})
	}
	if err := h.validator.Struct(in); err != nil {
		return h.createFailed(c, err)
	}
	out, err := h.commands.CreateMovimiento(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.createFailed(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ActionResponse{
		Success: true,
		Message: "Movimiento registrado correctamente",
		Data:    out,
	})
}

func (h *MovementHandler) createFailed(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ActionResponse{
			Message: "Los datos enviados no son válidos",
			Errors:  verr.Fields,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ActionResponse{
		Message: "Error al registrar el movimiento",
		Error:   err.Error(),
	})
}

// Consecutivo godoc
// @Summary      Emitir el siguiente número de documento
// @Description  El número queda consumido aunque no se registre el movimiento.
// @Tags         movimientos
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Failure      500  {object}  dto.ActionResponse
// @Router       /movimientos/consecutivo [get]
func (h *MovementHandler) Consecutivo(c *fiber.Ctx) error {
	out, err := h.commands.GetConsecutivo(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ActionResponse{
			Message: "Error al obtener el consecutivo",
			Error:   err.Error(),
		})
	}
	return c.JSON(dto.ActionResponse{Success: true, Data: out})
}

// Voucher godoc
// @Summary      Comprobante PDF del movimiento
// @Tags         movimientos
// @Produce      application/pdf
// @Param        docto  path  string  true  "Número de documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /movimientos/{docto}/pdf [get]
func (h *MovementHandler) Voucher(c *fiber.Ctx) error {
	b, filename, err := h.queries.VoucherPDF(c.UserContext(), c.Params("docto"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al generar el comprobante: " + err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(b)
}

// Export godoc
// @Summary      Exportar movimientos a Excel
// @Tags         movimientos
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search  query  string  false  "Texto en el documento"
// @Param        docto   query  string  false  "Texto en el documento"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /movimientos/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	b, filename, err := h.queries.Export(c.UserContext(), movimientoQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error al exportar los movimientos: " + err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
