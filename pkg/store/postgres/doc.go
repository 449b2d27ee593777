// Package postgres stores accounts in a PostgreSQL table through a pgx pool.
//
// The schema ships with the package as goose migrations and is applied by
// Migrate. Rows carry a position column that preserves insertion order.
// Save deletes and re-inserts every row inside one transaction.
//
//	pool, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	store := postgres.New(pool)
package postgres
