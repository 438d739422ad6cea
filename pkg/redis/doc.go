// Package redis wraps github.com/redis/go-redis/v9 with the pieces the
// service needs:
//
//   - Connect, which retries the initial connection using Config.
//   - Healthcheck, a readiness probe for httpserver.HealthCheckHandler.
//   - Ledger, a single-use record of consumed token ids built on SET NX with
//     expiry.
//
// Configuration is read from the environment via pkg/config:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ledger := redis.NewLedger(client, cfg.LedgerPrefix)
//	first, err := ledger.Consume(ctx, claims.ID(), time.Until(claims.ExpiresAt()))
//
// Signed tokens are stateless; the Ledger is the layer that gives them
// single-use semantics without a revocation list.
package redis
