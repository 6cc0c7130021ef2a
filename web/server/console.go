package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log, tagged with the render
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// drainConsole returns every message currently buffered in consoleChan
func drainConsole(consoleChan <-chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
