package bootstrap

import (
	"context"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger menulis audit event lifecycle service ke log utama.
// Request id diambil dari context kalau ada, agar event bisa dikaitkan
// dengan request yang memicunya.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("service", "workforce-records"),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Any("meta", entry.Meta),
	)
}
