package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/movement"
)

var (
	consecutivoQuery = regexp.QuoteMeta(consecutivoSQL)
	upsertQuery      = regexp.QuoteMeta(documentosUpsertSQL)
	scope            = entity.NumberingScope{Branch: "01", TransactionType: "INC", ZeroPad: true}
)

func strPtr(s string) *string { return &s }

func TestSequenceGenerator_GenerateNext(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	gen := NewSequenceGenerator(mock)
	payload := `{"codigo_sucursal":"01","tipo_transaccion":"INC","ceros_izquierda":1}`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(consecutivoQuery).
			WithArgs(payload).
			WillReturnRows(pgxmock.NewRows([]string{"usp_consecutivo_read"}).AddRow(strPtr("0000015")))

		docto, err := gen.GenerateNext(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, "0000015", docto)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null answer", func(t *testing.T) {
		mock.ExpectQuery(consecutivoQuery).
			WithArgs(payload).
			WillReturnRows(pgxmock.NewRows([]string{"usp_consecutivo_read"}).AddRow((*string)(nil)))

		_, err := gen.GenerateNext(ctx, scope)
		assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		mock.ExpectQuery(consecutivoQuery).WithArgs(payload).WillReturnError(cause)

		_, err := gen.GenerateNext(ctx, scope)
		assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		mock.ExpectQuery(consecutivoQuery).WithArgs(payload).WillReturnError(pgx.ErrNoRows)

		_, err := gen.GenerateNext(ctx, scope)
		assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without zero pad", func(t *testing.T) {
		mock.ExpectQuery(consecutivoQuery).
			WithArgs(`{"codigo_sucursal":"01","tipo_transaccion":"INC","ceros_izquierda":0}`).
			WillReturnRows(pgxmock.NewRows([]string{"usp_consecutivo_read"}).AddRow(strPtr("15")))

		docto, err := gen.GenerateNext(ctx, entity.NumberingScope{Branch: "01", TransactionType: "INC"})
		require.NoError(t, err)
		assert.Equal(t, "15", docto)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentGateway_CommitMovement(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	gw := NewDocumentGateway(mock)
	header := movement.HeaderPayload{Proceso: "NEW", Docto: "0000015", Codcli: "C001"}
	lines := []movement.LinePayload{{Docto: "0000015", CodigoArticulo: "CIL1", Cantidad: 2}}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(upsertQuery).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))

		require.NoError(t, gw.CommitMovement(ctx, header, lines))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejected by procedure", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
		mock.ExpectExec(upsertQuery).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(cause)

		err := gw.CommitMovement(ctx, header, lines)
		assert.ErrorIs(t, err, domain.ErrPersistence)
		assert.Contains(t, err.Error(), "foreign key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate docto", func(t *testing.T) {
		mock.ExpectExec(upsertQuery).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := gw.CommitMovement(ctx, header, lines)
		assert.ErrorIs(t, err, domain.ErrPersistence)
		assert.Contains(t, err.Error(), "0000015 duplicado")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
