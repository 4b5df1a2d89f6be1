// Package logger provides slog construction and attribute helpers.
//
// Create loggers with the factory function:
//
//	log := logger.New(
//		logger.WithDevelopment("bridged"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	prod := logger.New(logger.WithProduction("bridged"))
//
// Components that accept an optional logger default to logger.Nop().
//
// Attribute helpers keep records consistent across packages:
//
//	log.Warn("upgrade negotiated twice",
//		logger.Component("upgrade"),
//		logger.Shape("future"),
//		logger.Error(err),
//	)
//
//	log.Info("request completed",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Duration(time.Since(start)),
//	)
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops.
package logger
