package entity

// ThirdParty representa un tercero (cliente/proveedor) de m_terceros.
type ThirdParty struct {
	RowID         int64  `db:"row_id"`
	Codcli        string `db:"codcli"`
	NombreTercero string `db:"nombre_tercero"`
	NitTercero    string `db:"nit_tercero"`
}

// ThirdPartySummary datos mínimos de un tercero para listados.
type ThirdPartySummary struct {
	RowID         int64  `db:"row_id"`
	Codcli        string `db:"codcli"`
	NombreTercero string `db:"nombre_tercero"`
}
