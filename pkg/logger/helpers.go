package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNavigation logs the outcome of a single navigation attempt
func LogNavigation(url, purpose string, attempt int, err error) {
	fields := map[string]interface{}{
		"url":     url,
		"purpose": purpose,
		"attempt": attempt,
	}

	if err != nil {
		GetLogger().WithFields(fields).WithError(err).Warn("Navigation failed")
	} else {
		GetLogger().DebugWithFields("Navigation completed", fields)
	}
}

// LogExtraction logs the outcome of a single post extraction
func LogExtraction(account, url string, found bool, reason string) {
	fields := map[string]interface{}{
		"account": account,
		"url":     url,
		"found":   found,
	}
	if reason != "" {
		fields["reason"] = reason
	}

	if found {
		GetLogger().DebugWithFields("Post extracted", fields)
	} else {
		GetLogger().InfoWithFields("Post skipped", fields)
	}
}

// LogAccountSummary logs the per-account result after its scan ends
func LogAccountSummary(account string, collected, extracted int) {
	GetLogger().InfoWithFields("Account processed", map[string]interface{}{
		"account":   account,
		"collected": collected,
		"extracted": extracted,
	})
}

// LogRunSummary logs the whole-run result
func LogRunSummary(accounts, processed, skipped, posts int) {
	GetLogger().InfoWithFields("Run completed", map[string]interface{}{
		"accounts":  accounts,
		"processed": processed,
		"skipped":   skipped,
		"posts":     posts,
	})
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
