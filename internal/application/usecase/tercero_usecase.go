package usecase

import (
	"context"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

// TerceroUseCase consulta de terceros (ayuda de clientes del formulario de movimientos).
type TerceroUseCase struct {
	repo repository.TerceroRepository
}

// NewTerceroUseCase construye el caso de uso.
func NewTerceroUseCase(repo repository.TerceroRepository) *TerceroUseCase {
	return &TerceroUseCase{repo: repo}
}

// List página de terceros por nombre. per_page fuera de {5,10,15,20,50} se reemplaza por 10.
func (uc *TerceroUseCase) List(ctx context.Context, q dto.TerceroQuery) (*dto.PageEnvelope[dto.TerceroListItem], error) {
	page, size := entity.NormalizePage(q.Page, q.PerPage, entity.TerceroPageSizes)
	filter := repository.TerceroFilter{Search: q.Search, Codcli: q.Codcli, Nombre: q.Nombre}
	result, err := uc.repo.List(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TerceroListItem, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, dto.TerceroListItem{RowID: t.RowID, Codcli: t.Codcli, NombreTercero: t.NombreTercero})
	}
	return &dto.PageEnvelope[dto.TerceroListItem]{
		Data:        items,
		CurrentPage: page,
		LastPage:    result.LastPage(),
		Total:       result.Total,
	}, nil
}

// Get tercero por código; nil si no existe.
func (uc *TerceroUseCase) Get(ctx context.Context, codcli string) (*dto.TerceroResponse, error) {
	t, err := uc.repo.GetByCodcli(ctx, codcli)
	if err != nil || t == nil {
		return nil, err
	}
	return &dto.TerceroResponse{RowID: t.RowID, Codcli: t.Codcli, NombreTercero: t.NombreTercero, NitTercero: t.NitTercero}, nil
}
