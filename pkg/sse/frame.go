// Package sse implements the Server-Sent-Events wire format used by the
// generation stream, on top of Fiber's fasthttp body stream writer.
package sse

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	FrameTypeContent = "content"
	FrameTypeDone    = "done"
	FrameTypeError   = "error"
)

// Frame is the JSON payload of one SSE event. Module identifies which
// generation job the frame belongs to when several modules share a response.
type Frame struct {
	Type   string          `json:"type"`
	Module string          `json:"module,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Encode renders the frame in SSE wire format: "data: <json>\n\n".
// The exact bytes returned here are what goes both to the live client and
// into the replay buffer, so replay is indistinguishable from the original
// push.
func (f Frame) Encode() ([]byte, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal sse frame: %w", err)
	}
	return []byte(fmt.Sprintf("data: %s\n\n", payload)), nil
}

// SetHeaders prepares a Fiber response for SSE streaming. The X-Stream-Id
// header lets the client correlate this attempt with the status endpoint.
func SetHeaders(ctx *fiber.Ctx, streamID string) {
	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-transform")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")
	ctx.Set("X-Stream-Id", streamID)
}
