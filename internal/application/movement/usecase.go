package movement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	docbuilder "github.com/jhoicas/Cilindros-api/internal/domain/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
	"github.com/jhoicas/Cilindros-api/pkg/logger"
)

// Settings códigos del documento y ámbito de numeración.
type Settings struct {
	Codes   docbuilder.Codes
	ZeroPad bool
}

// DefaultSettings ingreso de cilindros en sucursal 01 con ceros a la izquierda.
func DefaultSettings() Settings {
	return Settings{Codes: docbuilder.DefaultCodes(), ZeroPad: true}
}

func (s Settings) scope() entity.NumberingScope {
	return entity.NumberingScope{
		Branch:          s.Codes.Sucursal,
		TransactionType: s.Codes.TransacDocto,
		ZeroPad:         s.ZeroPad,
	}
}

// CreateMovementUseCase crea documentos de ingreso de cilindros: número, cabecera y líneas en una sola tx.
type CreateMovementUseCase struct {
	txRunner TxRunner
	sequence repository.SequenceGenerator
	terceros repository.TerceroRepository
	settings Settings
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCreateMovementUseCase construye el caso de uso. sequence se usa fuera de tx (GetConsecutivo).
func NewCreateMovementUseCase(
	txRunner TxRunner,
	sequence repository.SequenceGenerator,
	terceros repository.TerceroRepository,
	settings Settings,
	log *logger.Logger,
	metrics Metrics,
) *CreateMovementUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CreateMovementUseCase{
		txRunner: txRunner,
		sequence: sequence,
		terceros: terceros,
		settings: settings,
		metrics:  metrics,
		log:      log.Named("movimientos"),
		now:      time.Now,
	}
}

// CreateMovimiento valida lo mínimo, resuelve el tercero y, dentro de una tx, genera el número,
// arma cabecera y líneas y las envía al procedimiento. Cualquier fallo revierte la tx.
func (uc *CreateMovementUseCase) CreateMovimiento(ctx context.Context, actor entity.Actor, in dto.CreateMovimientoRequest) (*dto.MovimientoCreatedResponse, error) {
	start := uc.now()
	resp, err := uc.create(ctx, actor, in)
	uc.metrics.ObserveCreate(outcomeOf(err), uc.now().Sub(start))
	if err != nil {
		ev := uc.log.Warn()
		if !errors.Is(err, domain.ErrValidation) {
			ev = uc.log.Error()
		}
		ev.Err(err).Str("codcli", in.Codcli).Str("usuario", actor.Username).Msg("movimiento rechazado")
		return nil, err
	}
	uc.log.Info().
		Str("docto", resp.Docto).
		Str("codcli", resp.Codcli).
		Int("lineas", len(in.Cilindros)).
		Str("usuario", actor.Username).
		Msg("movimiento creado")
	return resp, nil
}

func (uc *CreateMovementUseCase) create(ctx context.Context, actor entity.Actor, in dto.CreateMovimientoRequest) (*dto.MovimientoCreatedResponse, error) {
	input, err := toBuilderInput(in)
	if err != nil {
		return nil, err
	}

	tercero, err := uc.terceros.GetByCodcli(ctx, input.Codcli)
	if err != nil {
		return nil, err
	}
	if tercero == nil {
		return nil, domain.NewValidationError("codcli", "El cliente no existe")
	}

	meta := docbuilder.Meta{Now: uc.now(), Actor: actor, Codes: uc.settings.Codes}
	var docto string
	err = uc.txRunner.Run(ctx, func(seq repository.SequenceGenerator, gateway repository.DocumentGateway) error {
		raw, err := seq.GenerateNext(ctx, uc.settings.scope())
		if err != nil {
			return err
		}
		uc.metrics.SequenceIssued("create")
		docto = documentNumberFrom(raw)

		header := docbuilder.BuildHeader(docto, input, meta)
		lines := docbuilder.BuildLines(docto, input.Cilindros, meta)
		return gateway.CommitMovement(ctx, header, lines)
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovimientoCreatedResponse{
		Docto:  docto,
		Fecha:  input.Fecha.Format(docbuilder.DateLayout),
		Codcli: input.Codcli,
	}, nil
}

// GetConsecutivo emite un número del ámbito y la fecha de hoy. El número queda consumido.
func (uc *CreateMovementUseCase) GetConsecutivo(ctx context.Context) (*dto.ConsecutivoResponse, error) {
	raw, err := uc.sequence.GenerateNext(ctx, uc.settings.scope())
	if err != nil {
		uc.log.Error().Err(err).Msg("consecutivo no disponible")
		return nil, err
	}
	uc.metrics.SequenceIssued("consecutivo")
	return &dto.ConsecutivoResponse{
		Consecutivo: documentNumberFrom(raw),
		Fecha:       uc.now().Format(docbuilder.DateLayout),
	}, nil
}

// toBuilderInput convierte el request ya validado. Sin cilindros se rechaza antes de tocar la numeración.
func toBuilderInput(in dto.CreateMovimientoRequest) (docbuilder.Input, error) {
	if len(in.Cilindros) == 0 {
		return docbuilder.Input{}, domain.NewValidationError("cilindros", "Debe agregar al menos un cilindro")
	}
	fecha, err := time.Parse(docbuilder.DateLayout, strings.TrimSpace(in.Fecha))
	if err != nil {
		return docbuilder.Input{}, domain.NewValidationError("fecha", "La fecha debe ser válida")
	}
	codcli := strings.TrimSpace(in.Codcli)
	if codcli == "" {
		return docbuilder.Input{}, domain.NewValidationError("codcli", "El código del cliente es obligatorio")
	}

	items := make([]docbuilder.LineInput, 0, len(in.Cilindros))
	for _, c := range in.Cilindros {
		items = append(items, docbuilder.LineInput{
			CodigoArticulo: strings.TrimSpace(c.CodigoArticulo),
			Detalle:        strings.TrimSpace(c.Detalle),
			Cantidad:       valueOf(c.Cantidad),
			PrecioDocto:    valueOf(c.PrecioDocto),
			CostoPromedio:  valueOf(c.CostoPromedio),
			Bodega:         strings.TrimSpace(c.Bodega),
		})
	}
	return docbuilder.Input{
		Fecha:         fecha,
		Codcli:        codcli,
		Observaciones: in.Observaciones,
		Cilindros:     items,
	}, nil
}

// documentNumberFrom extrae documento_generado si la autoridad respondió un objeto JSON;
// en cualquier otro caso devuelve el valor tal cual.
func documentNumberFrom(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	switch v := decoded["documento_generado"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return trimmed
	default:
		return fmt.Sprint(v)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, domain.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, domain.ErrSequenceUnavailable):
		return OutcomeSequence
	case errors.Is(err, domain.ErrPersistence):
		return OutcomePersistence
	default:
		return OutcomeError
	}
}

func valueOf(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
