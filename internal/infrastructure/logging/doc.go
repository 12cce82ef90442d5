// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The conversions registry takes a bare *zap.Logger; this package exists so
// the daemon and tests construct configured loggers the same way.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Registry built", zap.Int("pairs", n))
package logging
