package repository

import (
	"context"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

// TerceroFilter filtros del listado de terceros.
// Search busca en codcli o nombre; Codcli y Nombre filtran su propia columna.
type TerceroFilter struct {
	Search string
	Codcli string
	Nombre string
}

// TerceroRepository puerto de lectura de terceros (clientes).
type TerceroRepository interface {
	List(ctx context.Context, filter TerceroFilter, page, pageSize int) (entity.Page[entity.ThirdPartySummary], error)
	// GetByCodcli devuelve nil, nil si no existe.
	GetByCodcli(ctx context.Context, codcli string) (*entity.ThirdParty, error)
}
