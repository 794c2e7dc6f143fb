package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// SetupSSEHeaders sets the response headers for a Server-Sent Events stream.
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// SendSSEChunk writes one data-only SSE frame and flushes it.
func SendSSEChunk(w http.ResponseWriter, flusher http.Flusher, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("failed to marshal sse payload", zap.Error(err))
		return
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		zap.L().Error("failed to write sse payload", zap.Error(err))
		return
	}
	flusher.Flush()
}

// SendSSEEvent writes one named SSE event and flushes it.
func SendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("failed to marshal sse event data", zap.Error(err))
		return
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		zap.L().Error("failed to write sse event", zap.Error(err))
		return
	}
	flusher.Flush()
}
