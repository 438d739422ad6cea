// Package httpserver runs an http.Server whose lifetime is bound to a
// context.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server", logger.Error(err))
//	}
//
// Run binds before serving, so address errors surface immediately as
// ErrStart. Cancelling the context drains in-flight requests for at most the
// shutdown timeout; a timeout yields ErrShutdown.
//
// LivenessHandler and ReadinessHandler serve JSON health probes. Readiness
// runs each named Check with its own timeout.
package httpserver
