package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos fijos del flujo de ingreso de cilindros.
const (
	DefaultBranch          = "01"  // sucursal
	DefaultTransactionType = "INC" // transac_docto
	DefaultDocType         = "E"   // tipo (entrada)
	DefaultPrefix          = "IN"  // prefijo

	DefaultObservaciones = "Documento de ingreso de cilindros"
)

// NumberingScope identifica el ámbito de numeración de documentos (sucursal + tipo de transacción).
type NumberingScope struct {
	Branch          string
	TransactionType string
	ZeroPad         bool
}

// Actor identifica al usuario que registra el documento (auditoría id_user/usuario).
type Actor struct {
	ID       int64
	Username string
}

// MovementHeader cabecera de un documento de movimiento (m_docto_header).
type MovementHeader struct {
	RowID            int64     `db:"row_id"`
	Sucursal         string    `db:"sucursal"`
	TransacDocto     string    `db:"transac_docto"`
	Tipo             string    `db:"tipo"`
	Prefijo          string    `db:"prefijo"`
	Docto            string    `db:"docto"`
	Fecha            time.Time `db:"fecha"`
	Hora             string    `db:"hora"`
	Codcli           string    `db:"codcli"`
	Observaciones    string    `db:"observaciones"`
	FechaTransaccion time.Time `db:"fecha_transaccion"`
	IDUser           int64     `db:"id_user"`
	Usuario          string    `db:"usuario"`
}

// MovementLine línea (cilindro) de un documento (m_docto_body).
type MovementLine struct {
	RowID          int64           `db:"row_id"`
	Docto          string          `db:"docto"`
	TipoMov        string          `db:"tipo_mov"`
	CodigoArticulo string          `db:"codigo_articulo"`
	Detalle        string          `db:"detalle"`
	Cantidad       decimal.Decimal `db:"cantidad"`
	PrecioDocto    decimal.Decimal `db:"precio_docto"`
	CostoPromedio  decimal.Decimal `db:"costo_promedio"`
	Bodega         string          `db:"bodega"`
}

// Total devuelve cantidad * precio_docto redondeado a 2 decimales.
func (l MovementLine) Total() decimal.Decimal {
	return l.Cantidad.Mul(l.PrecioDocto).Round(2)
}

// MovementSummary fila del listado paginado de movimientos.
type MovementSummary struct {
	RowID   int64     `db:"row_id"`
	Docto   string    `db:"docto"`
	Fecha   time.Time `db:"fecha"`
	Codcli  string    `db:"codcli"`
	Tercero *ThirdPartySummary
}

// MovementDetail cabecera + líneas ordenadas por código de artículo + tercero resuelto.
type MovementDetail struct {
	Header  MovementHeader
	Lines   []MovementLine
	Tercero *ThirdParty
}
