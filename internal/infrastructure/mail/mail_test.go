package mail

import (
	"context"
	"testing"

	"sk-barangay-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPMessage(t *testing.T) {
	msg, err := OTPMessage("Login OTP Verification", "Your OTP code for login is:", "482913", 10)
	require.NoError(t, err)
	assert.Equal(t, "Login OTP Verification", msg.Subject)
	assert.Contains(t, msg.HTML, "482913")
	assert.Contains(t, msg.HTML, "expire in 10 minutes")
}

func TestCredentialMessagesEscapeInput(t *testing.T) {
	msg, err := WelcomeMessage("Juan", "<b>Cruz</b>", "Tmp#Pass1")
	require.NoError(t, err)
	assert.Equal(t, "Your account has been created", msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Cruz&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "Tmp#Pass1")

	msg, err = PasswordResetMessage("Ana", "Reyes", "xyz")
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "Your password has been reset")
	assert.Contains(t, msg.HTML, "Password Reset Successful")
}

func TestNewMailerFallsBackToLog(t *testing.T) {
	m := NewMailer(&config.Config{})
	_, ok := m.(LogMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), "a@example.com", "s", "<p>b</p>"))

	m = NewMailer(&config.Config{MailHost: "smtp.example.com", MailPort: 587, MailFrom: "no-reply@example.com"})
	smtp, ok := m.(*SMTPMailer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", smtp.Host)
}

func TestSMTPMailerRejectsBadRecipient(t *testing.T) {
	m := &SMTPMailer{Host: "localhost", Port: 2525, From: "no-reply@example.com"}
	err := m.Send(context.Background(), "not an address", "s", "b")
	assert.Error(t, err)
}
