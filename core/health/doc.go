// Package health provides terminal handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	live := host.New[*host.Context]()
//	live.Run(health.Liveness[*host.Context])
//
//	ready := host.New[*host.Context]()
//	ready.Run(health.Readiness[*host.Context](log, checkDB))
//
// Dependency checks must follow func(context.Context) error signature:
//
//	func checkDB(ctx context.Context) error {
//		return db.PingContext(ctx)
//	}
package health
