package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var _ repository.SequenceGenerator = (*SequenceGenerator)(nil)

const consecutivoSQL = `SELECT usp_consecutivo_read($1::jsonb)`

// SequenceGenerator pide números a usp_consecutivo_read. La función incrementa el contador
// con UPDATE ... RETURNING, así que la serialización entre peticiones la hace PostgreSQL.
type SequenceGenerator struct {
	q Querier
}

// NewSequenceGenerator construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceGenerator(q Querier) *SequenceGenerator {
	return &SequenceGenerator{q: q}
}

type consecutivoInput struct {
	CodigoSucursal  string `json:"codigo_sucursal"`
	TipoTransaccion string `json:"tipo_transaccion"`
	CerosIzquierda  int    `json:"ceros_izquierda"`
}

// GenerateNext consume y devuelve el siguiente número del ámbito.
func (g *SequenceGenerator) GenerateNext(ctx context.Context, scope entity.NumberingScope) (string, error) {
	in := consecutivoInput{CodigoSucursal: scope.Branch, TipoTransaccion: scope.TransactionType}
	if scope.ZeroPad {
		in.CerosIzquierda = 1
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("%w: encode scope: %v", domain.ErrSequenceUnavailable, err)
	}

	var docto *string
	if err := g.q.QueryRow(ctx, consecutivoSQL, string(payload)).Scan(&docto); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSequenceUnavailable
		}
		return "", fmt.Errorf("%w: %w", domain.ErrSequenceUnavailable, err)
	}
	if docto == nil || strings.TrimSpace(*docto) == "" {
		return "", domain.ErrSequenceUnavailable
	}
	return *docto, nil
}
