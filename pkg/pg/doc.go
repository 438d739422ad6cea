// Package pg connects to PostgreSQL through github.com/jackc/pgx/v5 and
// applies schema migrations with github.com/pressly/goose/v3.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, db.Migrations, db.MigrationsDir, logger); err != nil {
//	    log.Fatal(err)
//	}
//
// Error helpers (IsNotFoundError, IsDuplicateKeyError, ConstraintName) keep
// pgx specifics out of the repositories built on top of the pool.
package pg
