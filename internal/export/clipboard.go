package export

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
)

// Clipboard receives exported text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Copy sends text to the clipboard. Failures are logged and reported through the
// return value only; nothing in the accounting depends on the copy succeeding.
func Copy(ctx context.Context, cb Clipboard, text string) bool {
	if cb == nil {
		return false
	}
	if err := cb.WriteAll(text); err != nil {
		slog.WarnContext(ctx, "Copy to clipboard failed", "error", err)
		return false
	}
	slog.DebugContext(ctx, "Summary copied to clipboard", "bytes", len(text))
	return true
}
