package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate применяет встроенные .up.sql миграции по порядку имён.
// Миграции идемпотентны (IF NOT EXISTS), повторный запуск безопасен.
func (db *DB) Migrate(ctx context.Context) error {
	return ApplyMigrations(ctx, db, migrationsFS, db.logger)
}

// ApplyMigrations applies all .up.sql files found in fsys
func ApplyMigrations(ctx context.Context, db *DB, fsys fs.FS, logger *zap.Logger) error {
	files, err := fs.Glob(fsys, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		logger.Info("Applied migration", zap.String("file", strings.TrimPrefix(file, "migrations/")))
	}

	return nil
}
