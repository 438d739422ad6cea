// Package logger builds the service's *slog.Logger and keeps attribute names
// consistent across packages.
//
// New applies functional options (format, level, output, static attributes,
// environment presets) and wraps the handler with LogHandlerDecorator, which
// pulls request-scoped values such as the request id out of context.Context on
// every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "email change token rejected",
//	    logger.Component("emailchange"),
//	    logger.UserID(userID),
//	    logger.Rejection(token.Kind(err)),
//	)
//
// Token rejections are logged with RejectionLevel, which follows the severity
// policy of the confirmation flow: malformed and expired tokens are routine,
// forged signatures and subject mismatches are security events.
//
// Never pass secrets or raw tokens as attributes.
package logger
