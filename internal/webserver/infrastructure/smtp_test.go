package infrastructure_test

import (
	"testing"

	"github.com/svera/camposanto/internal/webserver/infrastructure"
)

func TestSMTPReturnsDeliveryErrors(t *testing.T) {
	sender := &infrastructure.SMTP{Server: "127.0.0.1", Port: 1, User: "camposanto@example.com"}

	if err := sender.Send("jdc@example.com", "Subject", "<p>Body</p>"); err == nil {
		t.Error("Expected an error when the server cannot be reached")
	}
}
