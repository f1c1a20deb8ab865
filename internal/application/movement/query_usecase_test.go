package movement

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	docbuilder "github.com/jhoicas/Cilindros-api/internal/domain/movement"
)

func seededStore(n int) *memStore {
	store := newMemStore()
	for i := 1; i <= n; i++ {
		docto := fmt.Sprintf("INC-%02d-%03d", i%3, i)
		store.headers[docto] = docbuilder.HeaderPayload{Docto: docto, Fecha: "2024-01-10", Codcli: "C001"}
	}
	return store
}

func TestList_TamanoNoAdmitidoUsaDefault(t *testing.T) {
	uc := NewQueryUseCase(seededStore(25), nil, nil)

	page, err := uc.List(context.Background(), dto.MovimientoQuery{Page: 1, PerPage: 7})
	require.NoError(t, err)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestList_TotalNoDependeDelTamano(t *testing.T) {
	uc := NewQueryUseCase(seededStore(25), nil, nil)

	for _, size := range []int{10, 15, 20} {
		for p := 1; p <= 4; p++ {
			page, err := uc.List(context.Background(), dto.MovimientoQuery{Page: p, PerPage: size})
			require.NoError(t, err)
			assert.Equal(t, p, page.CurrentPage)
			assert.Equal(t, 25, page.Total)
			assert.Equal(t, (25+size-1)/size, page.LastPage)
		}
	}
}

func TestList_OrdenDescendenteYFiltro(t *testing.T) {
	uc := NewQueryUseCase(seededStore(25), nil, nil)

	page, err := uc.List(context.Background(), dto.MovimientoQuery{Search: "inc-01", PerPage: 20})
	require.NoError(t, err)
	require.NotEmpty(t, page.Data)
	for i, item := range page.Data {
		assert.Contains(t, item.Docto, "INC-01")
		if i > 0 {
			assert.Greater(t, page.Data[i-1].Docto, item.Docto)
		}
	}

	all, err := uc.List(context.Background(), dto.MovimientoQuery{Search: "   ", PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 25, all.Total)
}

func TestList_DoctoTienePrioridadSobreSearch(t *testing.T) {
	assert.Equal(t, "A", filterFrom(dto.MovimientoQuery{Docto: "A", Search: "B"}).Docto)
	assert.Equal(t, "B", filterFrom(dto.MovimientoQuery{Docto: " ", Search: " B "}).Docto)
}

func TestDetail_NoEncontrado(t *testing.T) {
	uc := NewQueryUseCase(newMemStore(), nil, nil)
	_, err := uc.Detail(context.Background(), "9999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type stubVoucher struct{ got *entity.MovementDetail }

func (s *stubVoucher) GenerateMovementPDF(_ context.Context, d *entity.MovementDetail) ([]byte, error) {
	s.got = d
	return []byte("%PDF-1.4"), nil
}

type stubExporter struct {
	rows []entity.MovementSummary
	err  error
}

func (s *stubExporter) ExportMovements(_ context.Context, rows []entity.MovementSummary) ([]byte, error) {
	s.rows = rows
	return []byte("PK"), s.err
}

func TestVoucherPDF(t *testing.T) {
	store := seededStore(1)
	voucher := &stubVoucher{}
	uc := NewQueryUseCase(store, voucher, nil)

	b, name, err := uc.VoucherPDF(context.Background(), "INC-01-001")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	assert.Equal(t, "movimiento_INC-01-001.pdf", name)
	assert.Equal(t, "INC-01-001", voucher.got.Header.Docto)

	_, _, err = uc.VoucherPDF(context.Background(), "NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_RecorreTodasLasPaginas(t *testing.T) {
	exporter := &stubExporter{}
	uc := NewQueryUseCase(seededStore(1203), nil, exporter)

	_, name, err := uc.Export(context.Background(), dto.MovimientoQuery{})
	require.NoError(t, err)
	assert.Equal(t, "movimientos.xlsx", name)
	assert.Len(t, exporter.rows, 1203)
	assert.Greater(t, exporter.rows[0].Docto, exporter.rows[1].Docto)
}

func TestExport_ErrorDelExportador(t *testing.T) {
	exporter := &stubExporter{err: errors.New("disco lleno")}
	uc := NewQueryUseCase(seededStore(3), nil, exporter)

	_, _, err := uc.Export(context.Background(), dto.MovimientoQuery{})
	assert.ErrorContains(t, err, "disco lleno")
}
