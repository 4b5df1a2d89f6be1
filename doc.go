// Package pipebridge lets middleware written for an environment-dictionary
// convention and middleware written for a typed-context convention run in one
// request pipeline, in both directions and including protocol upgrades.
//
// # Core Packages
//
//   - github.com/dmitrymomot/pipebridge/core/chain: generic decorator composition and builder
//   - github.com/dmitrymomot/pipebridge/core/handler: typed context, handler and middleware types
//   - github.com/dmitrymomot/pipebridge/core/env: environment dictionary, well-known keys and the context projector
//   - github.com/dmitrymomot/pipebridge/core/upgrade: two-phase upgrade negotiation in callback and future shapes
//   - github.com/dmitrymomot/pipebridge/core/bridge: UseEnv and UseTyped adapters
//   - github.com/dmitrymomot/pipebridge/core/services: type-keyed service registry
//   - github.com/dmitrymomot/pipebridge/core/host: typed and dictionary HTTP hosts with websocket completion
//   - github.com/dmitrymomot/pipebridge/core/server: HTTP server with graceful shutdown
//   - github.com/dmitrymomot/pipebridge/core/config: cached environment configuration loading
//   - github.com/dmitrymomot/pipebridge/core/logger: slog construction and attribute helpers
//   - github.com/dmitrymomot/pipebridge/core/health: liveness and readiness handlers
//
// # Middleware
//
//   - github.com/dmitrymomot/pipebridge/middleware: request IDs, logging and security headers
//
// # Utilities
//
//   - github.com/dmitrymomot/pipebridge/pkg/async: single-assignment futures
//
// # Getting Documentation
//
//	go doc github.com/dmitrymomot/pipebridge/core/bridge
//	go doc -all github.com/dmitrymomot/pipebridge/core/env
package pipebridge
