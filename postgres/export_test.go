package postgres

import "context"

// Truncate empties the properties table between tests.
func Truncate(ctx context.Context, db *DB) error {
	_, err := db.db.ExecContext(ctx, "TRUNCATE properties RESTART IDENTITY")
	return err
}
