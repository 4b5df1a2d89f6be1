// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns a function for errgroup: it serves until ctx is cancelled, then
// shuts down within the configured timeout. Hijacked connections, such as
// upgraded websockets, are not tracked by the shutdown and belong to their
// handlers.
//
// Settings can come from the environment through Config and NewFromConfig.
package server
