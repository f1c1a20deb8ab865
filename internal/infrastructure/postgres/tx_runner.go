package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cilindros-api/internal/application/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var _ movement.TxRunner = (*TxRunner)(nil)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool txBeginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el generador de números y el gateway atados a la tx
// y hace Commit o Rollback. El bloqueo de fila que toma usp_consecutivo_read dura hasta el fin de la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	seq repository.SequenceGenerator,
	gateway repository.DocumentGateway,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(NewSequenceGenerator(tx), NewDocumentGateway(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
