// Package server runs the HTTP listener of "bizgate watch".
//
// The server is started with the watch loop and stops when its context
// is cancelled, giving in-flight scrapes ShutdownTimeout to finish:
//
//	srv := server.NewServer(server.Config{ListenAddress: ":9108"}, mux, logger)
//	g.Go(func() error { return srv.Start(ctx) })
package server
