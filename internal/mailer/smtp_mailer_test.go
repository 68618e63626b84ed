package mailer

import (
	"bytes"
	"testing"

	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationMessage(t *testing.T) {
	s := NewSMTPMailer("smtp.example.com", 587, "user", "pass", "noreply@tidar.id", "TIDAR", logger.NewNop())

	var buf bytes.Buffer
	_, err := s.verificationMessage("ana@x.com", "Ana").WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Subject: Your membership has been verified")
	assert.Contains(t, out, "ana@x.com")
	assert.Contains(t, out, "noreply@tidar.id")
	assert.Contains(t, out, "Hello Ana,")
}

func TestVerificationMessage_DefaultName(t *testing.T) {
	s := NewSMTPMailer("smtp.example.com", 587, "", "", "noreply@tidar.id", "", logger.NewNop())

	var buf bytes.Buffer
	_, err := s.verificationMessage("x@x.com", "").WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello Member,")
}

func TestNoopMailer(t *testing.T) {
	assert.NoError(t, NoopMailer{}.SendVerificationNotice("a@x.com", "A"))
}
