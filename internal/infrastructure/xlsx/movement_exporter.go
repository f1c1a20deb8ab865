// Package xlsx exporta el listado de movimientos a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appmovement "github.com/jhoicas/Cilindros-api/internal/application/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

var _ appmovement.SpreadsheetExporter = (*MovementExporter)(nil)

const sheetName = "Movimientos"

// MovementExporter genera un .xlsx con una fila por documento.
type MovementExporter struct{}

func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// ExportMovements escribe encabezado + filas en el orden recibido.
func (e *MovementExporter) ExportMovements(_ context.Context, rows []entity.MovementSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	header := []interface{}{"Documento", "Fecha", "Código cliente", "Cliente"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "D1", bold)
	}

	for i, r := range rows {
		nombre := ""
		if r.Tercero != nil {
			nombre = r.Tercero.NombreTercero
		}
		excelRow := []interface{}{r.Docto, r.Fecha.Format("2006-01-02"), r.Codcli, nombre}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("celda: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "C", 16)
	_ = f.SetColWidth(sheetName, "D", "D", 40)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
