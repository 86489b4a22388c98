package observability

import (
	"context"
	"log/slog"
	"os"
)

// GlobalLogger is the logger repository events are written to.
var GlobalLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: repoLogLevel(),
}))

// EnableRepoLogging toggles repository event logging.
var EnableRepoLogging = true

func repoLogLevel() slog.Level {
	if os.Getenv("APP_ENV") == "test" {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// RepoLogger writes structured events for one table.
type RepoLogger struct {
	table string
}

func NewRepoLogger(table string) *RepoLogger {
	return &RepoLogger{table: table}
}

func (l *RepoLogger) log(ctx context.Context, operation string, attrs []slog.Attr) {
	if !EnableRepoLogging {
		return
	}
	attrs = append(attrs,
		slog.String("table", l.table),
		slog.String("operation", operation),
	)
	GlobalLogger.LogAttrs(ctx, slog.LevelInfo, "repository "+operation, attrs...)
}

func (l *RepoLogger) LogCreate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "create", attrs)
}

func (l *RepoLogger) LogUpdate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "update", attrs)
}

func (l *RepoLogger) LogDelete(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "delete", attrs)
}

// LogError logs a failed repository operation.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	if !EnableRepoLogging {
		return
	}
	GlobalLogger.ErrorContext(ctx, "repository error",
		slog.String("table", l.table),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
