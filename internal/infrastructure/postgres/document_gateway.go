package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var _ repository.DocumentGateway = (*DocumentGateway)(nil)

const documentosUpsertSQL = `SELECT usp_documentos_insert_update($1::jsonb, $2::jsonb)`

// DocumentGateway envía cabecera y cuerpo a usp_documentos_insert_update, que inserta todo o nada.
type DocumentGateway struct {
	q Querier
}

// NewDocumentGateway construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentGateway(q Querier) *DocumentGateway {
	return &DocumentGateway{q: q}
}

// CommitMovement serializa ambos payloads y ejecuta el procedimiento una sola vez.
func (g *DocumentGateway) CommitMovement(ctx context.Context, header movement.HeaderPayload, lines []movement.LinePayload) error {
	if lines == nil {
		lines = []movement.LinePayload{}
	}
	cabecera, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("%w: encode cabecera: %v", domain.ErrPersistence, err)
	}
	cuerpo, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%w: encode movimientos: %v", domain.ErrPersistence, err)
	}

	if _, err := g.q.Exec(ctx, documentosUpsertSQL, string(cabecera), string(cuerpo)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: documento %s duplicado: %w", domain.ErrPersistence, header.Docto, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}
