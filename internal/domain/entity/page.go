package entity

// Page resultado paginado de una consulta: filas de la página y total del conjunto filtrado.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

// LastPage devuelve la última página (mínimo 1) según Total y PageSize.
func (p Page[T]) LastPage() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	last := p.Total / p.PageSize
	if p.Total%p.PageSize != 0 {
		last++
	}
	return last
}

// Tamaños de página admitidos por listado.
var (
	MovementPageSizes = []int{10, 15, 20}
	TerceroPageSizes  = []int{5, 10, 15, 20, 50}
)

// DefaultPageSize tamaño usado cuando el pedido no está en la lista admitida.
const DefaultPageSize = 10

// NormalizePage lleva page a >= 1 y pageSize a un valor de allowed (o DefaultPageSize).
func NormalizePage(page, pageSize int, allowed []int) (int, int) {
	if page < 1 {
		page = 1
	}
	for _, s := range allowed {
		if s == pageSize {
			return page, pageSize
		}
	}
	return page, DefaultPageSize
}
