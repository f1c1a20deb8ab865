package dto

// TerceroListItem fila de GET /terceros y tercero embebido en el listado de movimientos.
type TerceroListItem struct {
	RowID         int64  `json:"row_id"`
	Codcli        string `json:"codcli"`
	NombreTercero string `json:"Nombre_tercero"`
}

// TerceroResponse tercero completo del detalle de un movimiento.
type TerceroResponse struct {
	RowID         int64  `json:"row_id"`
	Codcli        string `json:"codcli"`
	NombreTercero string `json:"Nombre_tercero"`
	NitTercero    string `json:"nit_tercero"`
}

// TerceroQuery filtros de GET /terceros.
type TerceroQuery struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	Codcli  string `query:"codcli"`
	Nombre  string `query:"nombre"`
}

// MovimientoQuery filtros de GET /movimientos; search equivale a docto cuando docto no viene.
type MovimientoQuery struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	Docto   string `query:"docto"`
}
