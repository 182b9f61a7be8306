package pg

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProbeTableRead hace una lectura mínima sobre la tabla indicada y devuelve un
// status HTTP-like: 200 si la lectura funcionó (con o sin filas), o el código
// mapeado desde el SQLSTATE si no.
func (s *Store) ProbeTableRead(ctx context.Context, table string) (int, error) {
	ident := pgx.Identifier{table}.Sanitize()
	q := `SELECT 1 FROM ` + ident + ` LIMIT 1`

	var one int
	err := s.pool.QueryRow(ctx, q).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		// Tabla vacía: la dependencia responde igual.
		return http.StatusOK, nil
	}
	if err != nil {
		return probeStatus(err), err
	}
	return http.StatusOK, nil
}

// ProbeRPCCall invoca una función almacenada sin argumentos.
func (s *Store) ProbeRPCCall(ctx context.Context, fn string) (int, error) {
	ident := pgx.Identifier{fn}.Sanitize()
	q := `SELECT ` + ident + `()`

	if _, err := s.pool.Exec(ctx, q); err != nil {
		return probeStatus(err), err
	}
	return http.StatusOK, nil
}

// probeStatus mapea errores de pg a un status numérico. Default 500.
func probeStatus(err error) int {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42883": // undefined_table / undefined_function
			return http.StatusNotFound
		case "42501", "28000", "28P01": // permisos / autenticación
			return http.StatusForbidden
		case "57P03", "53300": // cannot_connect_now / too_many_connections
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
