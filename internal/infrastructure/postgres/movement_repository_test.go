package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var snapshotOpts = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

var incScope = entity.NumberingScope{Branch: "01", TransactionType: "INC"}

func int64Ptr(v int64) *int64 { return &v }

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%INC-01%", containsPattern("INC-01"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\x%`, containsPattern(`c:\x`))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), offset(1, 10))
	assert.Equal(t, uint64(0), offset(0, 10))
	assert.Equal(t, uint64(0), offset(-3, 10))
	assert.Equal(t, uint64(20), offset(3, 10))

	huge := offset(math.MaxInt, 10)
	assert.LessOrEqual(t, huge, uint64(math.MaxInt64))
	assert.Equal(t, uint64(0), huge%10)
}

func TestMovementRepo_ListMovements(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMovementRepository(mock, incScope)
	fecha := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("filtered page", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM m_docto_header h WHERE h\.sucursal = \$1 AND h\.transac_docto = \$2 AND h\.docto ILIKE \$3`).
			WithArgs("01", "INC", "%INC-01%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(`SELECT h\.row_id, h\.docto, h\.fecha, h\.codcli, t\.row_id AS tercero_row_id, t\.nombre_tercero FROM m_docto_header h LEFT JOIN m_terceros t ON t\.codcli = h\.codcli WHERE h\.sucursal = \$1 AND h\.transac_docto = \$2 AND h\.docto ILIKE \$3 ORDER BY h\.docto DESC LIMIT 10 OFFSET 10`).
			WithArgs("01", "INC", "%INC-01%").
			WillReturnRows(pgxmock.NewRows([]string{"row_id", "docto", "fecha", "codcli", "tercero_row_id", "nombre_tercero"}).
				AddRow(int64(2), "INC-01-002", fecha, "C001", int64Ptr(7), strPtr("Gases del Norte")).
				AddRow(int64(1), "INC-01-001", fecha, "C404", (*int64)(nil), (*string)(nil)))
		mock.ExpectCommit()

		page, err := repo.ListMovements(ctx, repository.MovementFilter{Docto: " INC-01 "}, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.LastPage())
		require.Len(t, page.Items, 2)
		assert.Equal(t, "INC-01-002", page.Items[0].Docto)
		require.NotNil(t, page.Items[0].Tercero)
		assert.Equal(t, "Gases del Norte", page.Items[0].Tercero.NombreTercero)
		assert.Nil(t, page.Items[1].Tercero)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank filter is unfiltered", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM m_docto_header h WHERE h\.sucursal = \$1 AND h\.transac_docto = \$2$`).
			WithArgs("01", "INC").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM m_docto_header h LEFT JOIN m_terceros t ON t\.codcli = h\.codcli WHERE h\.sucursal = \$1 AND h\.transac_docto = \$2 ORDER BY h\.docto DESC LIMIT 15 OFFSET 0`).
			WithArgs("01", "INC").
			WillReturnRows(pgxmock.NewRows([]string{"row_id", "docto", "fecha", "codcli", "tercero_row_id", "nombre_tercero"}))
		mock.ExpectCommit()

		page, err := repo.ListMovements(ctx, repository.MovementFilter{Docto: "   "}, 1, 15)
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.LastPage())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page beyond range is empty", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs("01", "INC").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(`ORDER BY h\.docto DESC LIMIT 10 OFFSET 9223372036854775800$`).
			WithArgs("01", "INC").
			WillReturnRows(pgxmock.NewRows([]string{"row_id", "docto", "fecha", "codcli", "tercero_row_id", "nombre_tercero"}))
		mock.ExpectCommit()

		page, err := repo.ListMovements(ctx, repository.MovementFilter{}, math.MaxInt, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Empty(t, page.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store unavailable", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).WillReturnError(errors.New("connection refused"))
		mock.ExpectRollback()

		_, err := repo.ListMovements(ctx, repository.MovementFilter{}, 1, 10)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMovementRepo_GetMovementDetail(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMovementRepository(mock, incScope)
	fecha := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`FROM m_docto_header WHERE sucursal = \$1 AND transac_docto = \$2 AND docto = \$3 LIMIT 1`).
			WithArgs("01", "INC", "0000001").
			WillReturnRows(pgxmock.NewRows(headerColumns).
				AddRow(int64(1), "01", "INC", "E", "IN", "0000001", fecha, "09:15:00",
					"C001", "Documento de ingreso de cilindros", ts, int64(1), "ADMIN"))
		mock.ExpectQuery(`FROM m_docto_body WHERE sucursal = \$1 AND transac_docto = \$2 AND docto = \$3 ORDER BY codigo_articulo ASC, row_id ASC`).
			WithArgs("01", "INC", "0000001").
			WillReturnRows(pgxmock.NewRows(lineColumns).
				AddRow(int64(10), "0000001", "E", "CIL1", "Cylinder",
					decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(60), "01").
				AddRow(int64(11), "0000001", "E", "CIL2", "Cylinder 2",
					decimal.RequireFromString("1.5"), decimal.NewFromInt(80), decimal.NewFromInt(50), "01"))
		mock.ExpectQuery(`FROM m_terceros WHERE codcli = \$1 LIMIT 1`).
			WithArgs("C001").
			WillReturnRows(pgxmock.NewRows([]string{"row_id", "codcli", "nombre_tercero", "nit_tercero"}).
				AddRow(int64(7), "C001", "Gases del Norte", "900123456"))
		mock.ExpectCommit()

		d, err := repo.GetMovementDetail(ctx, "0000001")
		require.NoError(t, err)
		assert.Equal(t, "0000001", d.Header.Docto)
		assert.Equal(t, "C001", d.Header.Codcli)
		require.Len(t, d.Lines, 2)
		assert.Equal(t, "CIL1", d.Lines[0].CodigoArticulo)
		assert.True(t, d.Lines[0].Cantidad.Equal(decimal.NewFromInt(2)))
		require.NotNil(t, d.Tercero)
		assert.Equal(t, "900123456", d.Tercero.NitTercero)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`FROM m_docto_header WHERE sucursal = \$1 AND transac_docto = \$2 AND docto = \$3`).
			WithArgs("01", "INC", "9999999").
			WillReturnRows(pgxmock.NewRows(headerColumns))
		mock.ExpectCommit()

		_, err := repo.GetMovementDetail(ctx, "9999999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same number in another scope stays hidden", func(t *testing.T) {
		other := NewMovementRepository(mock, entity.NumberingScope{Branch: "02", TransactionType: "INC"})
		mock.ExpectBeginTx(snapshotOpts)
		mock.ExpectQuery(`FROM m_docto_header WHERE sucursal = \$1 AND transac_docto = \$2 AND docto = \$3 LIMIT 1`).
			WithArgs("02", "INC", "0000001").
			WillReturnRows(pgxmock.NewRows(headerColumns))
		mock.ExpectCommit()

		_, err := other.GetMovementDetail(ctx, "0000001")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
