package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var headerColumns = []string{
	"row_id", "sucursal", "transac_docto", "tipo", "prefijo", "docto", "fecha", "hora",
	"codcli", "observaciones", "fecha_transaccion", "id_user", "usuario",
}

var lineColumns = []string{
	"row_id", "docto", "tipo_mov", "codigo_articulo", "detalle",
	"cantidad", "precio_docto", "costo_promedio", "bodega",
}

// MovementRepo lecturas de m_docto_header / m_docto_body dentro de un ámbito sucursal + transacción.
// El docto solo es único por ámbito, así que todas las consultas filtran por él.
type MovementRepo struct {
	db    DB
	scope entity.NumberingScope
}

// NewMovementRepository construye el adaptador sobre el pool para el ámbito de numeración dado.
func NewMovementRepository(db DB, scope entity.NumberingScope) *MovementRepo {
	return &MovementRepo{db: db, scope: scope}
}

func (r *MovementRepo) scopeEq(alias string) sq.Eq {
	return sq.Eq{
		alias + "sucursal":      r.scope.Branch,
		alias + "transac_docto": r.scope.TransactionType,
	}
}

type movementRow struct {
	RowID         int64     `db:"row_id"`
	Docto         string    `db:"docto"`
	Fecha         time.Time `db:"fecha"`
	Codcli        string    `db:"codcli"`
	TerceroRowID  *int64    `db:"tercero_row_id"`
	NombreTercero *string   `db:"nombre_tercero"`
}

func movementWhere(filter repository.MovementFilter) sq.Sqlizer {
	if term := strings.TrimSpace(filter.Docto); term != "" {
		return sq.ILike{"h.docto": containsPattern(term)}
	}
	return nil
}

// ListMovements página de cabeceras ordenadas por docto descendente, con el tercero resuelto.
func (r *MovementRepo) ListMovements(ctx context.Context, filter repository.MovementFilter, page, pageSize int) (entity.Page[entity.MovementSummary], error) {
	result := entity.Page[entity.MovementSummary]{
		Items:    []entity.MovementSummary{},
		Page:     page,
		PageSize: pageSize,
	}

	countQ := builder().Select("COUNT(*)").From("m_docto_header h").Where(r.scopeEq("h."))
	listQ := builder().
		Select("h.row_id", "h.docto", "h.fecha", "h.codcli",
			"t.row_id AS tercero_row_id", "t.nombre_tercero").
		From("m_docto_header h").
		LeftJoin("m_terceros t ON t.codcli = h.codcli").
		Where(r.scopeEq("h."))
	if where := movementWhere(filter); where != nil {
		countQ = countQ.Where(where)
		listQ = listQ.Where(where)
	}
	listQ = listQ.OrderBy("h.docto DESC").
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

	var rows []movementRow
	err = inReadSnapshot(ctx, r.db, func(q Querier) error {
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
			return fmt.Errorf("count movements: %w", err)
		}
		if err := pgxscan.Select(ctx, q, &rows, listSQL, listArgs...); err != nil {
			return fmt.Errorf("list movements: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	for _, row := range rows {
		s := entity.MovementSummary{RowID: row.RowID, Docto: row.Docto, Fecha: row.Fecha, Codcli: row.Codcli}
		if row.TerceroRowID != nil {
			s.Tercero = &entity.ThirdPartySummary{RowID: *row.TerceroRowID, Codcli: row.Codcli}
			if row.NombreTercero != nil {
				s.Tercero.NombreTercero = *row.NombreTercero
			}
		}
		result.Items = append(result.Items, s)
	}
	return result, nil
}

// GetMovementDetail cabecera, líneas por codigo_articulo ascendente y tercero. ErrNotFound si no existe.
func (r *MovementRepo) GetMovementDetail(ctx context.Context, docto string) (*entity.MovementDetail, error) {
	headerSQL, headerArgs, err := builder().
		Select(headerColumns...).
		From("m_docto_header").
		Where(r.scopeEq("")).
		Where(sq.Eq{"docto": docto}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	linesSQL, linesArgs, err := builder().
		Select(lineColumns...).
		From("m_docto_body").
		Where(r.scopeEq("")).
		Where(sq.Eq{"docto": docto}).
		OrderBy("codigo_articulo ASC", "row_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var detail entity.MovementDetail
	found := true
	err = inReadSnapshot(ctx, r.db, func(q Querier) error {
		if err := pgxscan.Get(ctx, q, &detail.Header, headerSQL, headerArgs...); err != nil {
			if pgxscan.NotFound(err) {
				found = false
				return nil
			}
			return fmt.Errorf("get header: %w", err)
		}
		if err := pgxscan.Select(ctx, q, &detail.Lines, linesSQL, linesArgs...); err != nil {
			return fmt.Errorf("list lines: %w", err)
		}
		tercero, err := getTercero(ctx, q, detail.Header.Codcli)
		if err != nil {
			return err
		}
		detail.Tercero = tercero
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	if detail.Lines == nil {
		detail.Lines = []entity.MovementLine{}
	}
	return &detail, nil
}
