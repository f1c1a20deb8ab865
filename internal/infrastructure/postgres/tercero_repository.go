package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var _ repository.TerceroRepository = (*TerceroRepo)(nil)

// TerceroRepo lecturas de m_terceros.
type TerceroRepo struct {
	db DB
}

// NewTerceroRepository construye el adaptador sobre el pool.
func NewTerceroRepository(db DB) *TerceroRepo {
	return &TerceroRepo{db: db}
}

func terceroWhere(filter repository.TerceroFilter) sq.And {
	var where sq.And
	if term := strings.TrimSpace(filter.Search); term != "" {
		p := containsPattern(term)
		where = append(where, sq.Or{
			sq.ILike{"codcli": p},
			sq.ILike{"nombre_tercero": p},
		})
	}
	if term := strings.TrimSpace(filter.Codcli); term != "" {
		where = append(where, sq.ILike{"codcli": containsPattern(term)})
	}
	if term := strings.TrimSpace(filter.Nombre); term != "" {
		where = append(where, sq.ILike{"nombre_tercero": containsPattern(term)})
	}
	return where
}

// List página de terceros ordenados por nombre ascendente.
func (r *TerceroRepo) List(ctx context.Context, filter repository.TerceroFilter, page, pageSize int) (entity.Page[entity.ThirdPartySummary], error) {
	result := entity.Page[entity.ThirdPartySummary]{
		Items:    []entity.ThirdPartySummary{},
		Page:     page,
		PageSize: pageSize,
	}

	countQ := builder().Select("COUNT(*)").From("m_terceros")
	listQ := builder().Select("row_id", "codcli", "nombre_tercero").From("m_terceros")
	if where := terceroWhere(filter); len(where) > 0 {
		countQ = countQ.Where(where)
		listQ = listQ.Where(where)
	}
	listQ = listQ.OrderBy("nombre_tercero ASC", "codcli ASC").
		Limit(uint64(pageSize)).
		Offset(offset(page, pageSize))

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	err = inReadSnapshot(ctx, r.db, func(q Querier) error {
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
			return fmt.Errorf("count terceros: %w", err)
		}
		if err := pgxscan.Select(ctx, q, &result.Items, listSQL, listArgs...); err != nil {
			return fmt.Errorf("list terceros: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return result, nil
}

// GetByCodcli obtiene un tercero por código. Devuelve nil, nil si no existe.
func (r *TerceroRepo) GetByCodcli(ctx context.Context, codcli string) (*entity.ThirdParty, error) {
	t, err := getTercero(ctx, r.db, codcli)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return t, nil
}

func getTercero(ctx context.Context, q Querier, codcli string) (*entity.ThirdParty, error) {
	query, args, err := builder().
		Select("row_id", "codcli", "nombre_tercero", "nit_tercero").
		From("m_terceros").
		Where(sq.Eq{"codcli": codcli}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var t entity.ThirdParty
	if err := pgxscan.Get(ctx, q, &t, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tercero: %w", err)
	}
	return &t, nil
}
