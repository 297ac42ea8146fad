package controller

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/livequery"
)

const defaultHeartbeat = 25 * time.Second

// streamSnapshots writes every snapshot of the handle as a server-sent
// "snapshot" event and a "ping" on each heartbeat. The stream ends when the
// client goes away, the handle stops, or last reports the final snapshot.
func streamSnapshots[T, R any](
	ctx *gin.Context,
	handle *livequery.Handle[T],
	heartbeat time.Duration,
	render func(T) R,
	last func(T) bool,
) {
	defer handle.Cancel()

	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	done := ctx.Request.Context().Done()
	ctx.Stream(func(io.Writer) bool {
		select {
		case <-done:
			return false
		case snapshot, ok := <-handle.Updates():
			if !ok {
				return false
			}
			ctx.SSEvent("snapshot", render(snapshot))
			return last == nil || !last(snapshot)
		case now := <-ticker.C:
			ctx.SSEvent("ping", now.UTC().Format(time.RFC3339))
			return true
		}
	})
}
