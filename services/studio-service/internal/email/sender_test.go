package email

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	m := buildMessage("studio@example.com", Message{
		To:      "ana@example.com",
		Subject: "Spring offer",
		Body:    "Dear Client,\n\nBook now.",
	})

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"From: studio@example.com", "To: ana@example.com", "Subject: Spring offer", "Book now."} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected %q in message:\n%s", want, raw)
		}
	}
}

func TestNewSMTPSender_DefaultsFromToUsername(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "studio@example.com"})
	if s.from != "studio@example.com" {
		t.Fatalf("unexpected from %q", s.from)
	}
}
