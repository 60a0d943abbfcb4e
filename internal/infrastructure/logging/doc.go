// Package logging provides structured logging for the wall-pad bridge.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the port drivers, the bridge,
// and the MQTT client.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for local development (human-readable)
//   - A default "service" field on every log entry
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured from the CLI flag surface (-l/--log, -v), not a
// config file: there is no persistent logging configuration for this
// bridge.
//
// # Usage
//
//	logger := logging.New(logging.Config{Level: "info", Format: "json", Output: "stdout"})
//	logger.Info("port opened", "port", "primary", "path", "/dev/ttyUSB0")
//	logger.Error("serial open failed", "port", "primary", "error", err)
package logging
