package brain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"basegraph.app/releasenotes/common/logger"
)

// sessionID names debug transcripts after the run id when one is in context.
func sessionID(ctx context.Context) string {
	if fields := logger.GetLogFields(ctx); fields.RunID != nil {
		return fmt.Sprintf("%d", *fields.RunID)
	}
	return time.Now().Format("20060102-150405.000")
}

func writeDebugLog(dir, agentType, sessionID, content string) {
	if dir == "" {
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("failed to create debug dir", "dir", dir, "error", err)
		return
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", agentType, sessionID))
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		slog.Warn("failed to write debug log", "file", filename, "error", err)
	}
}
