// Package logger builds *slog.Logger values from functional options and
// keeps attribute names consistent across the application.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// result in LogHandlerDecorator, which runs registered ContextExtractor
// callbacks on every record. Config maps APP_ENV, LOG_LEVEL and LOG_FORMAT
// onto those options.
//
// # Usage
//
//	opts, err := cfg.Options("otpvault")
//	if err != nil {
//	    return err
//	}
//	log := logger.New(append(opts, logger.WithContextValue("request_id", middleware.RequestIDKey))...)
//	log.InfoContext(ctx, "accounts imported", logger.Count(3))
//
// Attribute helpers such as Error and RequestID return an empty attribute for
// nil input, so they can be passed without a nil check. Account takes only a
// name: secrets are never logged.
package logger
