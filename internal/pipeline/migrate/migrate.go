package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Run executes operator-authored SQL files in order against the database.
// Stops at the first failure; there is no rollback across files and no
// retry. Fail loud and let the operator fix the file.
func Run(ctx context.Context, db *sql.DB, paths []string, logger *zap.Logger) error {
	for _, path := range paths {
		stmt, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		logger.Info("running migration", zap.String("file", path))
		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("executing %s: %w", path, err)
		}
	}
	return nil
}
