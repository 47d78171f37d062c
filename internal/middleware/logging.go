package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// sheetScoped is implemented by request messages that target one sheet.
type sheetScoped interface {
	GetSheetID() string
}

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC
// with the procedure, the sheet it touched and how long it took. Handler
// errors carrying a Connect code are logged at warn, anything else at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{"procedure", req.Spec().Procedure}
			if msg, ok := req.Any().(sheetScoped); ok {
				attrs = append(attrs, "sheet_id", sheetLabel(msg.GetSheetID()))
			}

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.InfoContext(ctx, "rpc completed", append(attrs, "peer", req.Peer().Addr)...)
			case errors.As(err, &connectErr):
				slog.WarnContext(ctx, "rpc failed",
					append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.ErrorContext(ctx, "rpc failed", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}

// sheetLabel names the default sheet explicitly so log lines stay greppable.
func sheetLabel(id string) string {
	if id == "" {
		return "default"
	}
	return id
}
