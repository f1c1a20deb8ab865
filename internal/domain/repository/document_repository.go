package repository

import (
	"context"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/movement"
)

// SequenceGenerator obtiene el siguiente número de documento del ámbito. Cada llamada consume un número.
type SequenceGenerator interface {
	GenerateNext(ctx context.Context, scope entity.NumberingScope) (string, error)
}

// DocumentGateway envía cabecera y líneas al procedimiento de inserción en una sola llamada.
type DocumentGateway interface {
	CommitMovement(ctx context.Context, header movement.HeaderPayload, lines []movement.LinePayload) error
}
