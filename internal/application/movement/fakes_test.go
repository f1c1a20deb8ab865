package movement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cilindros-api/internal/domain"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	docbuilder "github.com/jhoicas/Cilindros-api/internal/domain/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/repository"
)

// memStore simula la BD: el mutex hace de bloqueo de fila del contador durante toda la tx
// y las escrituras solo se aplican al confirmar.
type memStore struct {
	mu       sync.Mutex
	counter  int
	headers  map[string]docbuilder.HeaderPayload
	lines    map[string][]docbuilder.LinePayload
	seqCalls int

	format     func(n int) string
	seqErr     error
	commitErr  error
	commitSeen int
}

func newMemStore() *memStore {
	return &memStore{
		headers: map[string]docbuilder.HeaderPayload{},
		lines:   map[string][]docbuilder.LinePayload{},
		format:  func(n int) string { return fmt.Sprintf("%07d", n) },
	}
}

func (s *memStore) next() (string, error) {
	s.seqCalls++
	if s.seqErr != nil {
		return "", s.seqErr
	}
	s.counter++
	return s.format(s.counter), nil
}

// GenerateNext fuera de tx (GetConsecutivo).
func (s *memStore) GenerateNext(_ context.Context, _ entity.NumberingScope) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next()
}

type memTx struct {
	store   *memStore
	headers []docbuilder.HeaderPayload
	lines   map[string][]docbuilder.LinePayload
}

func (t *memTx) GenerateNext(_ context.Context, _ entity.NumberingScope) (string, error) {
	return t.store.next()
}

func (t *memTx) CommitMovement(_ context.Context, header docbuilder.HeaderPayload, lines []docbuilder.LinePayload) error {
	t.store.commitSeen++
	if t.store.commitErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, t.store.commitErr)
	}
	if _, dup := t.store.headers[header.Docto]; dup {
		return fmt.Errorf("%w: documento %s duplicado", domain.ErrPersistence, header.Docto)
	}
	t.headers = append(t.headers, header)
	t.lines[header.Docto] = append(t.lines[header.Docto], lines...)
	return nil
}

func (s *memStore) Run(ctx context.Context, fn func(seq repository.SequenceGenerator, gateway repository.DocumentGateway) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{store: s, lines: map[string][]docbuilder.LinePayload{}}
	if err := fn(tx, tx); err != nil {
		return err
	}
	for _, h := range tx.headers {
		s.headers[h.Docto] = h
		s.lines[h.Docto] = tx.lines[h.Docto]
	}
	return nil
}

func (s *memStore) ListMovements(_ context.Context, filter repository.MovementFilter, page, pageSize int) (entity.Page[entity.MovementSummary], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []entity.MovementSummary
	for docto, h := range s.headers {
		if filter.Docto != "" && !strings.Contains(strings.ToLower(docto), strings.ToLower(filter.Docto)) {
			continue
		}
		fecha, _ := time.Parse(docbuilder.DateLayout, h.Fecha)
		all = append(all, entity.MovementSummary{Docto: docto, Fecha: fecha, Codcli: h.Codcli})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Docto > all[j].Docto })

	res := entity.Page[entity.MovementSummary]{Total: len(all), Page: page, PageSize: pageSize, Items: []entity.MovementSummary{}}
	from := (page - 1) * pageSize
	if from < len(all) {
		to := from + pageSize
		if to > len(all) {
			to = len(all)
		}
		res.Items = all[from:to]
	}
	return res, nil
}

func (s *memStore) GetMovementDetail(_ context.Context, docto string) (*entity.MovementDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.headers[docto]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fecha, _ := time.Parse(docbuilder.DateLayout, h.Fecha)
	d := &entity.MovementDetail{Header: entity.MovementHeader{
		Sucursal: h.Sucursal, TransacDocto: h.TransacDocto, Tipo: h.Tipo, Prefijo: h.Prefijo,
		Docto: h.Docto, Fecha: fecha, Hora: h.Hora, Codcli: h.Codcli, Observaciones: h.Observaciones,
		IDUser: h.IDUser, Usuario: h.Usuario,
	}}
	for _, l := range s.lines[docto] {
		d.Lines = append(d.Lines, entity.MovementLine{
			Docto: l.Docto, TipoMov: l.TipoMov, CodigoArticulo: l.CodigoArticulo, Detalle: l.Detalle,
			Cantidad:      decimal.NewFromFloat(l.Cantidad),
			PrecioDocto:   decimal.NewFromFloat(l.PrecioDocto),
			CostoPromedio: decimal.NewFromFloat(l.CostoPromedio),
			Bodega:        l.Bodega,
		})
	}
	sort.Slice(d.Lines, func(i, j int) bool { return d.Lines[i].CodigoArticulo < d.Lines[j].CodigoArticulo })
	return d, nil
}

type memTerceros map[string]entity.ThirdParty

func (m memTerceros) List(context.Context, repository.TerceroFilter, int, int) (entity.Page[entity.ThirdPartySummary], error) {
	return entity.Page[entity.ThirdPartySummary]{}, nil
}

func (m memTerceros) GetByCodcli(_ context.Context, codcli string) (*entity.ThirdParty, error) {
	t, ok := m[codcli]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type recordedMetrics struct {
	mu       sync.Mutex
	outcomes []string
	issued   int
}

func (r *recordedMetrics) ObserveCreate(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordedMetrics) SequenceIssued(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
}
