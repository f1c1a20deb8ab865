package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	docbuilder "github.com/jhoicas/Cilindros-api/internal/domain/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

const (
	exportBatchSize = 500
	exportMaxRows   = 10000
)

// QueryUseCase listado, detalle, comprobante PDF y exportación de movimientos.
type QueryUseCase struct {
	repo     repository.MovementRepository
	voucher  VoucherGenerator
	exporter SpreadsheetExporter
}

// NewQueryUseCase construye el caso de uso. voucher y exporter pueden ser nil si no se exponen.
func NewQueryUseCase(repo repository.MovementRepository, voucher VoucherGenerator, exporter SpreadsheetExporter) *QueryUseCase {
	return &QueryUseCase{repo: repo, voucher: voucher, exporter: exporter}
}

func filterFrom(q dto.MovimientoQuery) repository.MovementFilter {
	term := q.Docto
	if strings.TrimSpace(term) == "" {
		term = q.Search
	}
	return repository.MovementFilter{Docto: strings.TrimSpace(term)}
}

// List página de movimientos. per_page fuera de {10,15,20} se reemplaza por 10.
func (uc *QueryUseCase) List(ctx context.Context, q dto.MovimientoQuery) (*dto.PageEnvelope[dto.MovimientoListItem], error) {
	page, size := entity.NormalizePage(q.Page, q.PerPage, entity.MovementPageSizes)
	result, err := uc.repo.ListMovements(ctx, filterFrom(q), page, size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoListItem, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, toListItem(s))
	}
	return &dto.PageEnvelope[dto.MovimientoListItem]{
		Data:        items,
		CurrentPage: page,
		LastPage:    result.LastPage(),
		Total:       result.Total,
	}, nil
}

// Detail cabecera, tercero y líneas de un documento.
func (uc *QueryUseCase) Detail(ctx context.Context, docto string) (*dto.MovimientoDetailResponse, error) {
	detail, err := uc.repo.GetMovementDetail(ctx, strings.TrimSpace(docto))
	if err != nil {
		return nil, err
	}
	return toDetailResponse(detail), nil
}

// VoucherPDF comprobante del documento. Devuelve bytes y nombre de archivo.
func (uc *QueryUseCase) VoucherPDF(ctx context.Context, docto string) ([]byte, string, error) {
	if uc.voucher == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	detail, err := uc.repo.GetMovementDetail(ctx, strings.TrimSpace(docto))
	if err != nil {
		return nil, "", err
	}
	b, err := uc.voucher.GenerateMovementPDF(ctx, detail)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("movimiento_%s%s.pdf", detail.Header.Prefijo, detail.Header.Docto), nil
}

// Export hoja de cálculo con todas las filas del filtro (hasta exportMaxRows), en el orden del listado.
func (uc *QueryUseCase) Export(ctx context.Context, q dto.MovimientoQuery) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("xlsx: exportador no configurado")
	}
	filter := filterFrom(q)
	var rows []entity.MovementSummary
	for page := 1; len(rows) < exportMaxRows; page++ {
		result, err := uc.repo.ListMovements(ctx, filter, page, exportBatchSize)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, result.Items...)
		if page >= result.LastPage() || len(result.Items) == 0 {
			break
		}
	}
	if len(rows) > exportMaxRows {
		rows = rows[:exportMaxRows]
	}
	b, err := uc.exporter.ExportMovements(ctx, rows)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, "movimientos.xlsx", nil
}

func toListItem(s entity.MovementSummary) dto.MovimientoListItem {
	item := dto.MovimientoListItem{
		RowID:  s.RowID,
		Docto:  s.Docto,
		Fecha:  s.Fecha.Format(docbuilder.DateLayout),
		Codcli: s.Codcli,
	}
	if s.Tercero != nil {
		item.Tercero = &dto.TerceroListItem{
			RowID:         s.Tercero.RowID,
			Codcli:        s.Tercero.Codcli,
			NombreTercero: s.Tercero.NombreTercero,
		}
	}
	return item
}

func toDetailResponse(d *entity.MovementDetail) *dto.MovimientoDetailResponse {
	if d == nil {
		return nil
	}
	h := d.Header
	resp := &dto.MovimientoDetailResponse{
		RowID:            h.RowID,
		Sucursal:         h.Sucursal,
		TransacDocto:     h.TransacDocto,
		Tipo:             h.Tipo,
		Prefijo:          h.Prefijo,
		Docto:            h.Docto,
		Fecha:            h.Fecha.Format(docbuilder.DateLayout),
		Hora:             h.Hora,
		Codcli:           h.Codcli,
		Observaciones:    h.Observaciones,
		FechaTransaccion: h.FechaTransaccion.Format("2006-01-02 15:04:05"),
		IDUser:           h.IDUser,
		Usuario:          h.Usuario,
		Bodies:           make([]dto.MovimientoLineResponse, 0, len(d.Lines)),
	}
	if d.Tercero != nil {
		resp.Tercero = &dto.TerceroResponse{
			RowID:         d.Tercero.RowID,
			Codcli:        d.Tercero.Codcli,
			NombreTercero: d.Tercero.NombreTercero,
			NitTercero:    d.Tercero.NitTercero,
		}
	}
	for _, l := range d.Lines {
		resp.Bodies = append(resp.Bodies, dto.MovimientoLineResponse{
			RowID:          l.RowID,
			Docto:          l.Docto,
			TipoMov:        l.TipoMov,
			CodigoArticulo: l.CodigoArticulo,
			Detalle:        l.Detalle,
			Cantidad:       l.Cantidad.StringFixed(3),
			PrecioDocto:    l.PrecioDocto.StringFixed(2),
			CostoPromedio:  l.CostoPromedio.StringFixed(2),
			Total:          l.Total().StringFixed(2),
			Bodega:         l.Bodega,
		})
	}
	return resp
}
