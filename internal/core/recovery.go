package core

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// EntrySource produces generated entries.
type EntrySource interface {
	GenerateEntry(ctx context.Context) (Entry, error)
}

// SafeGenerate calls src.GenerateEntry and converts a panic into an error.
func SafeGenerate(ctx context.Context, src EntrySource, logger *zap.Logger) (entry Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			err = fmt.Errorf("entry generation panicked: %v", r)

			if logger != nil {
				logger.Error("entry generation panic",
					zap.Any("panic", r),
					zap.String("stack", stack),
				)
			}
			entry = Entry{}
		}
	}()

	return src.GenerateEntry(ctx)
}
