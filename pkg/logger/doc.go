// Package logger provides a structured logging interface for the Instagram helper.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output
// - Optional file output
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "ighelper/pkg/logger"
//
//	cfg := &config.LoggingConfig{Level: "info"}
//	err := logger.Initialize(cfg)
//
//	logger.Info("Run started")
//	logger.WithField("account", "somehandle").Info("Processing account")
//	logger.WithError(err).Error("Navigation failed")
package logger
