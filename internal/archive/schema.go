package archive

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS draws (
	contest INT NOT NULL PRIMARY KEY,
	draw_date VARCHAR(32) NOT NULL DEFAULT '',
	numbers VARCHAR(128) NOT NULL,
	even_count TINYINT NOT NULL,
	odd_count TINYINT NOT NULL,
	source VARCHAR(16) NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// Migrate creates the archive table when it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("db.ExecContext(create draws) > %w", err)
	}
	return nil
}
