// Package logger builds configured log/slog loggers for the engine and its
// callers. Output format and level default from LOG_FORMAT and LOG_LEVEL
// environment variables and can be overridden with options.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "guardkit")),
//	)
package logger
