package repository

import (
	"context"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Docto se compara por subcadena sin distinguir mayúsculas.
type MovementFilter struct {
	Docto string
}

// MovementRepository puerto de lectura de documentos de movimiento.
// page y pageSize llegan ya normalizados (page >= 1, pageSize > 0).
type MovementRepository interface {
	ListMovements(ctx context.Context, filter MovementFilter, page, pageSize int) (entity.Page[entity.MovementSummary], error)
	GetMovementDetail(ctx context.Context, docto string) (*entity.MovementDetail, error)
}
