// Package movement contiene la construcción pura (sin I/O) de los payloads JSON que consume
// usp_documentos_insert_update: una cabecera y N líneas atadas al mismo docto.
package movement

// HeaderPayload cabecera tal como la espera el procedimiento de inserción.
type HeaderPayload struct {
	Proceso          string `json:"proceso"`
	RowID            int64  `json:"row_id"`
	Sucursal         string `json:"sucursal"`
	TransacDocto     string `json:"transac_docto"`
	Tipo             string `json:"tipo"`
	Prefijo          string `json:"prefijo"`
	Docto            string `json:"docto"`
	TipoFactura      string `json:"tipo_factura"`
	Fecha            string `json:"fecha"`
	Hora             string `json:"hora"`
	FechaVence       string `json:"fecha_vence"`
	Codcli           string `json:"codcli"`
	DoctoProvee      string `json:"docto_provee"`
	Comprobante      string `json:"comprobante"`
	CodigoVendedor   string `json:"codigo_vendedor"`
	Observaciones    string `json:"Observaciones"`
	Multiproposito   string `json:"multiproposito"`
	FechaTransaccion string `json:"fecha_transaccion"`
	IDUser           int64  `json:"id_user"`
	Usuario          string `json:"usuario"`
}

// LinePayload línea (cilindro) tal como la espera el procedimiento de inserción.
// Los valores numéricos viajan como números JSON ya redondeados.
type LinePayload struct {
	RowID            int64   `json:"row_id"`
	Sucursal         string  `json:"sucursal"`
	TransacDocto     string  `json:"transac_docto"`
	Tipo             string  `json:"tipo"`
	Prefijo          string  `json:"prefijo"`
	Docto            string  `json:"docto"`
	TipoMov          string  `json:"tipo_mov"`
	CodigoArticulo   string  `json:"codigo_articulo"`
	Detalle          string  `json:"detalle"`
	DescripAmpliada  string  `json:"descrip_ampliada"`
	Cantidad         float64 `json:"cantidad"`
	PrecioDocto      float64 `json:"precio_docto"`
	DesctoDocto      float64 `json:"descto_docto"`
	VlrBaseDescto    float64 `json:"vlr_base_descto"`
	VlrDescto        float64 `json:"vlr_descto"`
	IvaDocto         float64 `json:"iva_docto"`
	VlrBaseIva       float64 `json:"vlr_baseiva"`
	VlrIva           float64 `json:"vlr_iva"`
	CostoPromedio    float64 `json:"costo_promedio"`
	Bodega           string  `json:"bodega"`
	CodigoConcepto   string  `json:"codigo_concepto"`
	IDUser           int64   `json:"id_user"`
	Usuario          string  `json:"usuario"`
	Multiproposito   string  `json:"multiproposito"`
	FechaTransaccion string  `json:"Fecha_transaccion"`
}
