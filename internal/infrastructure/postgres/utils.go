package postgres

import (
	"errors"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón %term% escapando comodines del usuario.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// offset (page-1)*pageSize acotado para no desbordar; una página fuera de rango devuelve vacío.
func offset(page, pageSize int) uint64 {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return uint64(math.MaxInt/pageSize) * uint64(pageSize)
	}
	return uint64((page - 1) * pageSize)
}
