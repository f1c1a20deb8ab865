// seed_terceros genera la migración SQL que pobla m_terceros a partir del CSV exportado del
// sistema contable (Windows-1252, separador ';', columnas codcli;nombre_tercero;nit_tercero).
//
// Uso: go run ./cmd/seed_terceros [ruta/terceros.csv]
// Por defecto busca terceros.csv en el directorio actual.
// Escribe: migrations/postgres/000002_seed_terceros.{up,down}.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type tercero struct {
	codcli, nombre, nit string
}

func main() {
	csvPath := "terceros.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	terceros, err := readTerceros(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "migrations", "postgres")
	upPath := filepath.Join(dir, "000002_seed_terceros.up.sql")
	out, err := os.Create(upPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSeed(out, terceros); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	down := "-- Los terceros sembrados pueden tener movimientos; no se eliminan.\nSELECT 1;\n"
	if err := os.WriteFile(filepath.Join(dir, "000002_seed_terceros.down.sql"), []byte(down), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir down: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d terceros\n", upPath, len(terceros))
}

// readTerceros decodifica Windows-1252 y descarta filas sin código. La primera fila es encabezado
// si su primera columna es "codcli". Un codcli repetido conserva la última fila.
func readTerceros(r io.Reader) ([]tercero, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out   []tercero
		index = make(map[string]int)
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "codcli") {
			continue
		}
		if len(rec) < 2 {
			continue
		}
		t := tercero{codcli: strings.TrimSpace(rec[0]), nombre: strings.TrimSpace(rec[1])}
		if len(rec) > 2 {
			t.nit = strings.TrimSpace(rec[2])
		}
		if t.codcli == "" {
			continue
		}
		if i, ok := index[t.codcli]; ok {
			out[i] = t
			continue
		}
		index[t.codcli] = len(out)
		out = append(out, t)
	}
	return out, nil
}

func writeSeed(w io.Writer, terceros []tercero) error {
	var b strings.Builder
	b.WriteString("-- Terceros (clientes) del sistema contable\n")
	b.WriteString("-- Generado por cmd/seed_terceros\n\n")
	if len(terceros) == 0 {
		b.WriteString("SELECT 1;\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO m_terceros (codcli, nombre_tercero, nit_tercero) VALUES\n")
	for i, t := range terceros {
		sep := ","
		if i == len(terceros)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", escapeSQL(t.codcli), escapeSQL(t.nombre), escapeSQL(t.nit), sep)
	}
	b.WriteString("ON CONFLICT (codcli) DO UPDATE SET\n")
	b.WriteString("  nombre_tercero = EXCLUDED.nombre_tercero,\n")
	b.WriteString("  nit_tercero = EXCLUDED.nit_tercero;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
