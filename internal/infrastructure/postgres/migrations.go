package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jhoicas/Cilindros-api/pkg/config"
)

// RunMigrations aplica las migraciones pendientes de cfg.MigrationsPath (tablas m_* y las funciones
// usp_consecutivo_read / usp_documentos_insert_update). Sin cambios pendientes no es error.
func RunMigrations(cfg config.DBConfig) error {
	if cfg.MigrationsPath == "" {
		return errors.New("migrations: ruta vacía")
	}
	m, err := migrate.New("file://"+cfg.MigrationsPath, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("migrations: crear instancia: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: aplicar: %w", err)
	}
	return nil
}
