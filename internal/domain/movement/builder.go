package movement

import (
	"strings"
	"time"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	procesoNuevo    = "NEW"
	fechaVenceVacia = "0000-00-00"

	DateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	timestampLayout = "2006-01-02 15:04:05"
)

// Codes códigos de clasificación del documento (constantes del flujo).
type Codes struct {
	Sucursal     string
	TransacDocto string
	Tipo         string
	Prefijo      string
}

// DefaultCodes códigos del ingreso de cilindros: sucursal 01, INC, E, IN.
func DefaultCodes() Codes {
	return Codes{
		Sucursal:     entity.DefaultBranch,
		TransacDocto: entity.DefaultTransactionType,
		Tipo:         entity.DefaultDocType,
		Prefijo:      entity.DefaultPrefix,
	}
}

// Meta datos generados que se inyectan en ambos payloads.
type Meta struct {
	Now   time.Time
	Actor entity.Actor
	Codes Codes
}

// Input entrada validada de un movimiento.
type Input struct {
	Fecha         time.Time
	Codcli        string
	Observaciones string
	Cilindros     []LineInput
}

// LineInput una línea (cilindro) validada.
type LineInput struct {
	CodigoArticulo string
	Detalle        string
	Cantidad       decimal.Decimal
	PrecioDocto    decimal.Decimal
	CostoPromedio  decimal.Decimal
	Bodega         string
}

// BuildHeader arma la cabecera para docto. Observaciones vacías toman el texto por defecto.
func BuildHeader(docto string, in Input, meta Meta) HeaderPayload {
	obs := strings.TrimSpace(in.Observaciones)
	if obs == "" {
		obs = entity.DefaultObservaciones
	}
	return HeaderPayload{
		Proceso:          procesoNuevo,
		RowID:            0,
		Sucursal:         meta.Codes.Sucursal,
		TransacDocto:     meta.Codes.TransacDocto,
		Tipo:             meta.Codes.Tipo,
		Prefijo:          meta.Codes.Prefijo,
		Docto:            docto,
		Fecha:            in.Fecha.Format(DateLayout),
		Hora:             meta.Now.Format(timeLayout),
		FechaVence:       fechaVenceVacia,
		Codcli:           in.Codcli,
		DoctoProvee:      in.Codcli,
		Observaciones:    obs,
		FechaTransaccion: meta.Now.Format(timestampLayout),
		IDUser:           meta.Actor.ID,
		Usuario:          meta.Actor.Username,
	}
}

// BuildLines arma una línea por cilindro, todas con el mismo docto y códigos de la cabecera.
func BuildLines(docto string, items []LineInput, meta Meta) []LinePayload {
	ts := meta.Now.Format(timestampLayout)
	lines := make([]LinePayload, 0, len(items))
	for _, it := range items {
		lines = append(lines, LinePayload{
			Sucursal:         meta.Codes.Sucursal,
			TransacDocto:     meta.Codes.TransacDocto,
			Tipo:             meta.Codes.Tipo,
			Prefijo:          meta.Codes.Prefijo,
			Docto:            docto,
			TipoMov:          meta.Codes.Tipo,
			CodigoArticulo:   it.CodigoArticulo,
			Detalle:          it.Detalle,
			Cantidad:         it.Cantidad.Round(3).InexactFloat64(),
			PrecioDocto:      it.PrecioDocto.Round(2).InexactFloat64(),
			CostoPromedio:    it.CostoPromedio.Round(2).InexactFloat64(),
			Bodega:           it.Bodega,
			IDUser:           meta.Actor.ID,
			Usuario:          meta.Actor.Username,
			FechaTransaccion: ts,
		})
	}
	return lines
}
