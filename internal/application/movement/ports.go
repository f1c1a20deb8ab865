package movement

import (
	"context"
	"time"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el generador de números
// y el gateway atados a esa tx. Si fn devuelve error la tx se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		seq repository.SequenceGenerator,
		gateway repository.DocumentGateway,
	) error) error
}

// Metrics registra resultados del flujo de creación.
type Metrics interface {
	ObserveCreate(outcome string, elapsed time.Duration)
	SequenceIssued(source string)
}

// Resultados posibles de ObserveCreate.
const (
	OutcomeCreated     = "created"
	OutcomeValidation  = "validation"
	OutcomeSequence    = "sequence"
	OutcomePersistence = "persistence"
	OutcomeError       = "error"
)

// VoucherGenerator genera el comprobante PDF de un movimiento.
type VoucherGenerator interface {
	GenerateMovementPDF(ctx context.Context, detail *entity.MovementDetail) ([]byte, error)
}

// SpreadsheetExporter genera la hoja de cálculo del listado de movimientos.
type SpreadsheetExporter interface {
	ExportMovements(ctx context.Context, rows []entity.MovementSummary) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveCreate(string, time.Duration) {}
func (nopMetrics) SequenceIssued(string)               {}
