package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/cvforge/chronicle/pkg/utils/logging"
)

// Close closes an io.Closer, logging instead of returning the error. Meant
// for paths where the enclosing operation already succeeded and a close
// failure is only worth a log line. Nil closers are ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("close failed", slog.Any("error", err))
	}
}

// Write writes to an io.Writer, logging instead of returning the error.
// Nil writers are ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("write failed", slog.Any("error", err))
	}
}
