package dto

import "github.com/shopspring/decimal"

// CreateMovimientoRequest body para POST /movimientos.
type CreateMovimientoRequest struct {
	Fecha         string            `json:"fecha" validate:"required,datetime=2006-01-02,notfuture"`
	Codcli        string            `json:"codcli" validate:"required,max=20"`
	Observaciones string            `json:"observaciones" validate:"max=500"`
	Cilindros     []CilindroRequest `json:"cilindros" validate:"required,min=1,dive"`
}

// CilindroRequest una línea del movimiento. Los valores numéricos son punteros: ausente no es cero.
type CilindroRequest struct {
	CodigoArticulo string           `json:"codigo_articulo" validate:"required,max=20"`
	Detalle        string           `json:"detalle" validate:"required,max=100"`
	Cantidad       *decimal.Decimal `json:"cantidad" validate:"required,gte=0.001,lte=9999.999"`
	PrecioDocto    *decimal.Decimal `json:"precio_docto" validate:"required,gte=0,lte=99999999.99"`
	CostoPromedio  *decimal.Decimal `json:"costo_promedio" validate:"required,gte=0,lte=99999999.99"`
	Bodega         string           `json:"bodega" validate:"required,max=10"`
}

// MovimientoCreatedResponse confirmación de creación.
type MovimientoCreatedResponse struct {
	Docto  string `json:"docto"`
	Fecha  string `json:"fecha"`
	Codcli string `json:"codcli"`
}

// ConsecutivoResponse número emitido y fecha de hoy.
type ConsecutivoResponse struct {
	Consecutivo string `json:"consecutivo"`
	Fecha       string `json:"fecha"`
}

// MovimientoListItem fila de GET /movimientos.
type MovimientoListItem struct {
	RowID   int64            `json:"row_id"`
	Docto   string           `json:"docto"`
	Fecha   string           `json:"fecha"`
	Codcli  string           `json:"codcli"`
	Tercero *TerceroListItem `json:"tercero"`
}

// MovimientoDetailResponse cabecera con tercero y líneas (bodies) de GET /movimientos/:docto.
type MovimientoDetailResponse struct {
	RowID            int64                    `json:"row_id"`
	Sucursal         string                   `json:"sucursal"`
	TransacDocto     string                   `json:"transac_docto"`
	Tipo             string                   `json:"tipo"`
	Prefijo          string                   `json:"prefijo"`
	Docto            string                   `json:"docto"`
	Fecha            string                   `json:"fecha"`
	Hora             string                   `json:"hora"`
	Codcli           string                   `json:"codcli"`
	Observaciones    string                   `json:"Observaciones"`
	FechaTransaccion string                   `json:"fecha_transaccion"`
	IDUser           int64                    `json:"id_user"`
	Usuario          string                   `json:"usuario"`
	Tercero          *TerceroResponse         `json:"tercero"`
	Bodies           []MovimientoLineResponse `json:"bodies"`
}

// MovimientoLineResponse línea del detalle; cantidades y valores con precisión fija como texto.
type MovimientoLineResponse struct {
	RowID          int64  `json:"row_id"`
	Docto          string `json:"docto"`
	TipoMov        string `json:"tipo_mov"`
	CodigoArticulo string `json:"codigo_articulo"`
	Detalle        string `json:"detalle"`
	Cantidad       string `json:"cantidad"`
	PrecioDocto    string `json:"precio_docto"`
	CostoPromedio  string `json:"costo_promedio"`
	Total          string `json:"total"`
	Bodega         string `json:"bodega"`
}
