// Package httpserver runs an http.Server bound to a context.
//
// Run blocks until the context is cancelled, then shuts the server down
// within the configured deadline. Signal handling is left to the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, router, httpserver.WithLogger(log))
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
//
// Listen and serve failures wrap ErrStart; a shutdown that misses its
// deadline wraps ErrShutdown.
package httpserver
