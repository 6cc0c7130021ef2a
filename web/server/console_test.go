package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("Rendering %q at %dx%d...\n", "default", 400, 400)

	select {
	case msg := <-messageChan:
		expected := "Rendering \"default\" at 400x400...\n"
		if msg.Message != expected {
			t.Errorf("Expected message '%s', got '%s'", expected, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	// The second and third messages are dropped instead of blocking
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	messages := drainConsole(messageChan)
	if len(messages) != 1 || messages[0].Message != "Message 1\n" {
		t.Errorf("Expected only the first message, got %v", messages)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestDrainConsole(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-drain", messageChan)

	messages := []string{"Message 1\n", "Message 2\n", "Message 3\n"}
	for _, msg := range messages {
		logger.Printf("%s", msg)
	}

	received := drainConsole(messageChan)
	if len(received) != len(messages) {
		t.Fatalf("Expected %d messages, got %d", len(messages), len(received))
	}
	for i, expected := range messages {
		if received[i].Message != expected {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expected, received[i].Message)
		}
	}

	if empty := drainConsole(messageChan); len(empty) != 0 {
		t.Errorf("Expected empty channel after drain, got %d messages", len(empty))
	}
}
